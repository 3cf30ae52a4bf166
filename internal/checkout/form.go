package checkout

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
	"storefront/internal/services"
)

// Form is what the shopper types on the checkout page.
type Form struct {
	FullName       string `json:"fullName" validate:"min=2"`
	Email          string `json:"email" validate:"email"`
	Phone          string `json:"phone" validate:"digits=10"`
	Address        string `json:"address" validate:"min=5"`
	City           string `json:"city" validate:"min=2"`
	State          string `json:"state" validate:"min=2"`
	Zip            string `json:"zip" validate:"digits=5"`
	CardNumber     string `json:"cardNumber" validate:"digits=16"`
	ExpiryDate     string `json:"expiryDate" validate:"expiry"`
	CVV            string `json:"cvv" validate:"digits=3"`
	SimulationCode string `json:"simulationCode" validate:"oneof=1 2 3"`
}

// Selection is the product choice carried over from the landing page.
type Selection struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// Submission is the body of POST /checkout.
type Submission struct {
	Form
	Product Selection `json:"product"`
}

// UnknownProductMessage is reported on productId when the catalog has no such product.
const UnknownProductMessage = "Please choose a product"

var messages = map[string]string{
	"fullName":       "Name must be at least 2 characters",
	"email":          "Please enter a valid email address",
	"phone":          "Please enter a valid 10-digit phone number",
	"address":        "Address must be at least 5 characters",
	"city":           "City must be at least 2 characters",
	"state":          "State must be at least 2 characters",
	"zip":            "Please enter a valid 5-digit zip code",
	"cardNumber":     "Please enter a valid 16-digit card number",
	"expiryDate":     "Please enter a valid expiry date (MM/YY) in the future",
	"cvv":            "Please enter a valid 3-digit CVV",
	"simulationCode": "Please enter 1, 2, or 3 to simulate different outcomes",
	"productId":      UnknownProductMessage,
	"quantity":       "Quantity must be at least 1",
	"price":          "Price must not be negative",
}

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "checkout form has invalid fields"
}

// Validator checks checkout submissions. Expiry dates are judged against the
// clock it was built with.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator; now is consulted on every expiry check.
func NewValidator(now func() time.Time) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on empty tags or nil functions.
	_ = v.RegisterValidation("digits", digits)
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return ValidExpiry(fl.Field().String(), now())
	})
	return &Validator{validate: v}
}

// Validate returns FieldErrors with one message per failing field, or nil.
func (v *Validator) Validate(s Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		msg, ok := messages[name]
		if !ok {
			msg = "Invalid value"
		}
		fields[name] = msg
	}
	return fields
}

// digits checks for exactly param ASCII digits.
func digits(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	s := fl.Field().String()
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidExpiry reports whether value is an MM/YY date in the current month or
// later. Years are compared on their last two digits.
func ValidExpiry(value string, now time.Time) bool {
	if len(value) != 5 || value[2] != '/' {
		return false
	}
	month, err := strconv.Atoi(value[:2])
	if err != nil || value[0] == '+' || value[0] == '-' {
		return false
	}
	year, err := strconv.Atoi(value[3:])
	if err != nil || value[3] == '+' || value[3] == '-' {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	return year > currentYear || (year == currentYear && month >= currentMonth)
}

// PricedFrom replaces the client's product name and price with the catalog's.
func (s Submission) PricedFrom(product models.Product) Submission {
	s.Product.Name = product.Name
	s.Product.Price = product.Price
	return s
}

// OrderRequest turns a validated submission into an order request. Only the
// last four card digits survive; the full number and CVV are dropped.
func (s Submission) OrderRequest() models.CreateOrderRequest {
	totals := services.ComputeTotals(s.Product.Price, s.Product.Quantity)
	return models.CreateOrderRequest{
		Customer: &models.Customer{
			FullName: s.FullName,
			Email:    s.Email,
			Phone:    s.Phone,
			Address:  s.Address,
			City:     s.City,
			State:    s.State,
			Zip:      s.Zip,
		},
		Payment: &models.PaymentSummary{
			Last4:      s.CardNumber[len(s.CardNumber)-4:],
			ExpiryDate: s.ExpiryDate,
		},
		Product: &models.OrderProduct{
			ID:       s.Product.ProductID,
			Name:     s.Product.Name,
			Variant:  s.Product.Variant,
			Quantity: s.Product.Quantity,
			Price:    s.Product.Price,
		},
		Totals:         &totals,
		SimulationCode: models.SimulationCode(s.SimulationCode),
	}
}
