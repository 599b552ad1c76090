package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/netplan/pkg/capacity"
	"github.com/matzehuels/netplan/pkg/delay"
	"github.com/matzehuels/netplan/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks struct constraints first, then the domain rules of the
// catalog, thresholds, cost tables and packet size.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := capacity.NewCatalog(c.Planning.Catalog); err != nil {
		return err
	}
	if err := c.Planning.Thresholds.Validate(); err != nil {
		return err
	}
	if err := c.Costs.Validate(); err != nil {
		return err
	}
	if _, err := delay.PacketSizeBits(c.Planning.PacketSizeBytes); err != nil {
		return err
	}
	return nil
}

// formatValidationError reports the first failed constraint as a config
// error naming the offending key.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}

	e := verrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required", "required_if":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be one of [%s], got %q", field, e.Param(), e.Value())
	case "min", "gte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "max", "lte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must not exceed %s", field, e.Param())
	case "gt":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be greater than %s", field, e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}
