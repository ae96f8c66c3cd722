package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/core/ports"
)

// SpendForm is the create-spend form schema. Validation runs entirely
// client-side before any network call; failures never reach the API client.
type SpendForm struct {
	Amount      float64 `validate:"gt=0"`
	Currency    string  `validate:"required,oneof=USD EUR GBP CAD AUD"`
	Category    string  `validate:"required"`
	Description string  `validate:"required,max=500"`
}

// Attachment is an optional receipt file accompanying a submission.
type Attachment struct {
	Filename string
	Content  io.Reader
}

// CreateSpendPage drives the new-spend form: category metadata, schema
// validation, receipt upload, and the final creation call.
type CreateSpendPage struct {
	notices
	backend  ports.Backend
	uploader ports.ReceiptUploader
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time

	Loading    bool
	Categories []domain.Category
}

func NewCreateSpendPage(b ports.Backend, uploader ports.ReceiptUploader, log zerolog.Logger) *CreateSpendPage {
	return &CreateSpendPage{
		backend:  b,
		uploader: uploader,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

// Load fetches the category options for the form selector.
func (p *CreateSpendPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	cats, err := p.backend.ListCategories(ctx)
	recordLoad("spends_new", err)
	if err != nil {
		p.log.Warn().Err(err).Msg("categories load failed")
		p.notifyError("Could not load categories: " + err.Error())
		return err
	}
	p.Categories = cats
	return nil
}

// Submit validates the form, uploads the optional receipt, and creates the
// spend. The returned id is the navigation target for the detail route.
// Field errors are shown inline and mean no request was issued. An upload
// failure aborts the whole flow: the spend is never created without its
// attachment.
func (p *CreateSpendPage) Submit(ctx context.Context, form SpendForm, attachment *Attachment) (string, map[string]string, error) {
	if fieldErrs := p.validateForm(form); len(fieldErrs) > 0 {
		return "", fieldErrs, nil
	}

	var receiptURL string
	if attachment != nil {
		url, err := p.uploader.Upload(ctx, attachment.Filename, attachment.Content)
		if err != nil {
			p.log.Warn().Err(err).Msg("receipt upload failed")
			p.notifyError("Receipt upload failed. Please try again.")
			return "", nil, err
		}
		receiptURL = url
	}

	spend, err := p.backend.CreateSpend(ctx, ports.CreateSpendInput{
		Amount:      form.Amount,
		Currency:    form.Currency,
		Category:    form.Category,
		Description: form.Description,
		SpendDate:   p.now().Format("2006-01-02"),
		Source:      "dashboard",
		ReceiptURL:  receiptURL,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("spend creation failed")
		p.notifyError("Submission failed. Please try again.")
		return "", nil, err
	}

	p.notifySuccess("Expense submitted successfully!")
	return spend.ID, nil, nil
}

// validateForm maps schema violations to inline, per-field messages.
func (p *CreateSpendPage) validateForm(form SpendForm) map[string]string {
	err := p.validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fieldErrs["form"] = "invalid submission"
		return fieldErrs
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "gt":
			fieldErrs[field] = "Amount must be greater than 0"
		case "required":
			fieldErrs[field] = fmt.Sprintf("%s is required", capitalize(field))
		case "oneof":
			fieldErrs[field] = fmt.Sprintf("%s must be one of: %s", capitalize(field), fe.Param())
		case "max":
			fieldErrs[field] = fmt.Sprintf("%s must be at most %s characters", capitalize(field), fe.Param())
		default:
			fieldErrs[field] = fmt.Sprintf("%s is invalid", capitalize(field))
		}
	}
	return fieldErrs
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
