package store

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/pricing"
)

// DefaultDesignName is used when a design is saved with a blank name.
const DefaultDesignName = "Untitled Design"

// Design is a saved, named configuration with the price captured at save time.
type Design struct {
	ID            string              `json:"id" validate:"required,design_id"`
	Name          string              `json:"name" validate:"required,design_name,max=120"`
	Customization customization.State `json:"customization"`
	CreatedAt     time.Time           `json:"createdAt"`
	Price         pricing.Money       `json:"price" validate:"gte=0"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	designIDPattern = regexp.MustCompile(`^design_[0-9A-Za-z-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Accepts both uuid ids and the millisecond timestamps of older collections.
		_ = v.RegisterValidation("design_id", func(fl validator.FieldLevel) bool {
			return designIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("design_name", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a single record.
func (d Design) Validate() error {
	if err := validatorInstance().Struct(d); err != nil {
		return fmt.Errorf("design %q: %w", d.ID, err)
	}
	if d.CreatedAt.IsZero() {
		return fmt.Errorf("design %q: missing createdAt", d.ID)
	}
	if err := d.Customization.Validate(); err != nil {
		return fmt.Errorf("design %q: %w", d.ID, err)
	}
	return nil
}

// NewDesignID returns a time-ordered identifier of the form design_<uuidv7>.
func NewDesignID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating design id: %w", err)
	}
	return "design_" + id.String(), nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultDesignName
	}
	return name
}
