package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/noot-app/fetch-servings/internal/config"
	"github.com/noot-app/fetch-servings/internal/servings"
)

var (
	// ErrInvalidCredentials is returned when credentials fail validation before any network call
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned by GetData when Authenticate has not succeeded
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnknownDataset is returned by GetData for datasets other than servings
	ErrUnknownDataset = errors.New("unknown dataset")
)

// Provider is the nutrition-tracking service boundary
type Provider interface {
	Authenticate(ctx context.Context, creds Credentials) error
	GetData(ctx context.Context, dataset string, params servings.DateRange) ([]servings.RawServing, error)
}

// Credentials identify the Cronometer account
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks that both credentials are present
func (c Credentials) Validate() error {
	validate, translator := newValidator()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, e.Translate(translator))
	}
	return fmt.Errorf("%w: %s", ErrInvalidCredentials, strings.Join(messages, ", "))
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()

	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(fmt.Errorf("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(fmt.Errorf("translator was not registered: %w", err))
	}

	// Use JSON field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return validate, translator
}

// New creates the provider selected by configuration.
// CRONOMETER_SYNTHETIC=true returns fake data without any network access.
func New(cfg *config.Config, logger *slog.Logger) Provider {
	if cfg.Synthetic {
		logger.Debug("Using synthetic servings provider")
		return NewSynthetic(logger)
	}
	return NewCronometer(logger)
}
