package assessment

import (
	"fmt"

	"github.com/adoptiq/maturity/internal/domain"
	"github.com/adoptiq/maturity/internal/domain/dimension"
)

// ValidateCreate validates the intake fields for a new assessment.
func ValidateCreate(req *CreateRequest) error {
	if req.OrganizationName == "" {
		return fmt.Errorf("organization_name is required: %w", domain.ErrValidation)
	}
	if !ValidIndustries[req.Industry] {
		return fmt.Errorf("invalid industry %q: %w", req.Industry, domain.ErrValidation)
	}
	if !ValidOrgSizes[req.OrganizationSize] {
		return fmt.Errorf("invalid organization_size %q: %w", req.OrganizationSize, domain.ErrValidation)
	}
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateResponses validates a response batch before persistence. Value and
// weight ranges are checked here so a bad submission fails at intake rather
// than at scoring time.
func ValidateResponses(inputs []ResponseInput) error {
	if len(inputs) == 0 {
		return fmt.Errorf("responses are required: %w", domain.ErrValidation)
	}
	for _, in := range inputs {
		if in.QuestionID == "" {
			return fmt.Errorf("question_id is required: %w", domain.ErrValidation)
		}
		if !dimension.Valid(in.Dimension) {
			return fmt.Errorf("response %s has unknown dimension %q: %w",
				in.QuestionID, in.Dimension, domain.ErrValidation)
		}
		if in.Value < 0 || in.Value > 100 {
			return fmt.Errorf("response %s value %.2f outside [0,100]: %w",
				in.QuestionID, in.Value, domain.ErrValidation)
		}
		if in.Weight < 0 {
			return fmt.Errorf("response %s has negative weight: %w", in.QuestionID, domain.ErrValidation)
		}
	}
	return nil
}
