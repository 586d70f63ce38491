package validate_test

import (
	"testing"

	"github.com/upahaar/upahaar/pkg/validate"
)

type signupInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"nullable,digits=10"`
	Role     string `json:"role"     validate:"required,in=customer,admin,vendor"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:     "Aarav Sharma",
		Email:    "aarav@example.com",
		Password: "secret123",
		Phone:    "", // nullable, allowed to be empty
		Role:     "customer",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestInRuleWithMultipleValues(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:     "Aarav",
		Email:    "aarav@example.com",
		Password: "secret123",
		Role:     "moderator", // not in the allowed list
	})
	if _, ok := errs["role"]; !ok {
		t.Errorf("expected role error, got: %v", errs)
	}
}

func TestDigitsRule(t *testing.T) {
	in := signupInput{
		Name:     "Aarav",
		Email:    "aarav@example.com",
		Password: "secret123",
		Phone:    "98765",
		Role:     "customer",
	}
	errs := validate.Struct(in)
	if _, ok := errs["phone"]; !ok {
		t.Errorf("expected phone digits error, got: %v", errs)
	}

	in.Phone = "9876543210"
	errs = validate.Struct(in)
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestMinOnNumbers(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}
	errs := validate.Struct(in{Quantity: 0})
	if _, ok := errs["quantity"]; !ok {
		t.Errorf("expected quantity error, got: %v", errs)
	}
	if errs = validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=5"`
	}
	errs := validate.Struct(in{})
	if len(errs) != 1 {
		t.Errorf("expected exactly one error for name, got: %v", errs)
	}
}
