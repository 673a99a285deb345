package domain

import "strings"

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (c Customer) Trimmed() Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Phone: strings.TrimSpace(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
}

// Blank returns the JSON names of fields that are empty after trimming.
func (c Customer) Blank() []string {
	t := c.Trimmed()

	var missing []string
	if t.Name == "" {
		missing = append(missing, "name")
	}
	if t.Phone == "" {
		missing = append(missing, "phone")
	}
	if t.Email == "" {
		missing = append(missing, "email")
	}
	return missing
}

type Order struct {
	Items    []LineItem `json:"items"`
	Total    int64      `json:"total"`
	Customer Customer   `json:"customer"`
	Date     string     `json:"date"`
	OrderID  string     `json:"orderId"`
}
