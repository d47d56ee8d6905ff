package models

import (
	"fmt"
	"strings"

	apperrors "studereg/pkg/errors"
)

// Person is a registry entry whose address is always the result of a postal
// code lookup, never free text.
type Person struct {
	ID         int64
	Name       string
	PostalCode string
	Address    string
}

// Validate rejects a blank name.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.Clone(apperrors.ErrValidation, "name is required and cannot be blank")
	}
	return nil
}

func (p *Person) String() string {
	return fmt.Sprintf("%d - %s | %s", p.ID, p.Name, p.Address)
}
