package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/anjiri1684/studio_tracker/services"
	"github.com/anjiri1684/studio_tracker/storage"
	"github.com/anjiri1684/studio_tracker/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if a, ok := field.Interface().(models.Amount); ok {
			return a.Decimal.String()
		}
		return nil
	}, models.Amount{})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		a, err := models.NewAmount(fl.Field().String())
		return err == nil && a.Valid()
	})
	return v
}

// StrictJSONDecoder rejects unknown fields. It is installed as the app's
// JSONDecoder so BodyParser uses it.
func StrictJSONDecoder(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Handler serves the studio API for the instructor stored by middleware.Tenant.
type Handler struct {
	store   storage.Storage
	reports *services.ReportService
	uploads *services.UploadSigner
}

func NewHandler(store storage.Storage, reports *services.ReportService, uploads *services.UploadSigner) *Handler {
	return &Handler{store: store, reports: reports, uploads: uploads}
}

// parseBody decodes and validates the JSON body into req.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

func queryDate(c *fiber.Ctx, name string) (*models.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid %s: %v", name, err))
	}
	return &d, nil
}

// storageError maps a storage failure to 404 or 409, or to a 500 that hides the cause.
func storageError(c *fiber.Ctx, err error, action string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	}
	if errors.Is(err, storage.ErrEmailTaken) {
		return fiber.NewError(fiber.StatusConflict, "Email already belongs to another account")
	}
	utils.Logger.WithError(err).WithField("path", c.Path()).Errorf("🔥 Failed to %s", action)
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to "+action)
}
