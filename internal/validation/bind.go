package validation

import (
	"errors"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Request-shape failures keep the exact wording clients already depend on.
var (
	ErrInvalidBody    = errors.New("Invalid JSON Body")
	ErrMissingOrder   = errors.New("Missing order in request payload")
	ErrMissingOrderID = errors.New("Missing order_id in request payload")
	ErrInvalidOrderID = errors.New("Invalid order_id in request payload")
	ErrMissingBuyer   = errors.New("Missing buyer in request payload")
)

// BindAndValidate binds the JSON body into out and runs validation, returning
// the field-specific error for the first failure. The handler writes the 400.
func BindAndValidate(c *gin.Context, out *ShipRequest, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return ErrInvalidBody
	}

	if err := v.Struct(out); err != nil {
		var verrs validatorv10.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return ErrInvalidBody
	}
	return nil
}

func fieldError(fe validatorv10.FieldError) error {
	switch fe.StructField() {
	case "Order":
		return ErrMissingOrder
	case "Buyer":
		return ErrMissingBuyer
	default:
		return ErrInvalidBody
	}
}

// OrderID extracts the numeric order_id from the bound request. JSON numbers
// decode as float64; integral values coerce, anything else is rejected rather
// than silently truncated.
func OrderID(req *ShipRequest) (int, error) {
	raw, ok := req.Order["order_id"]
	if !ok || raw == nil {
		return 0, ErrMissingOrderID
	}
	switch x := raw.(type) {
	case float64:
		if x != float64(int(x)) {
			return 0, ErrInvalidOrderID
		}
		return int(x), nil
	case int:
		return x, nil
	default:
		return 0, ErrInvalidOrderID
	}
}
