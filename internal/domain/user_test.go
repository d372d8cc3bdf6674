package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestPrincipal_CanAccessUnit(t *testing.T) {
	own := int32(7)

	tests := []struct {
		name      string
		principal *Principal
		unit      int32
		want      bool
	}{
		{"admin any unit", &Principal{UserID: uuid.New(), Role: RoleAdmin}, 3, true},
		{"resident own unit", &Principal{UserID: uuid.New(), Role: RoleResident, UnitNumber: &own}, 7, true},
		{"resident other unit", &Principal{UserID: uuid.New(), Role: RoleResident, UnitNumber: &own}, 8, false},
		{"resident without unit", &Principal{UserID: uuid.New(), Role: RoleResident}, 7, false},
		{"nil principal", nil, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.principal.CanAccessUnit(tt.unit); got != tt.want {
				t.Errorf("CanAccessUnit(%d) = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}
}

func TestUserRole(t *testing.T) {
	if (&User{IsStaff: true}).Role() != RoleAdmin {
		t.Error("staff user should be admin")
	}
	if (&User{}).Role() != RoleResident {
		t.Error("non-staff user should be resident")
	}
}
