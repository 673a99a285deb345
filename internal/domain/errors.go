package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrQuantityOverflow       = errors.New("quantity or total is out of range")
	ErrEmptyCart              = errors.New("cart is empty, nothing to checkout")
	ErrIncompleteCustomerInfo = errors.New("customer info is incomplete")
	ErrMalformedState         = errors.New("persisted state is malformed")
)

type IncompleteCustomerInfoError struct {
	Missing []string
}

func (e *IncompleteCustomerInfoError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteCustomerInfo, strings.Join(e.Missing, ", "))
}

func (e *IncompleteCustomerInfoError) Is(target error) bool {
	return target == ErrIncompleteCustomerInfo
}
