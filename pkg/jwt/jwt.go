package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de cuenta que pueden iniciar sesión. Cada uno es un espacio de
// credenciales independiente: usuarios administrativos, sucursales y personal técnico.
const (
	KindUser      = "user"
	KindBranch    = "branch"
	KindPersonnel = "personnel"
)

// Subject identifica al actor autenticado dentro del token.
// BranchID y PersonnelID pueden estar vacíos según el rol; CompanyID solo
// está vacío para super_admin.
type Subject struct {
	AccountID   string // id en su tabla de origen (users, branches o personnel)
	Kind        string // ver constantes Kind*
	Role        string // super_admin, company_admin, branch_manager, technician
	CompanyID   string
	BranchID    string
	PersonnelID string
}

// Claims incluye los claims estándar JWT más el alcance de autorización del actor.
// El PersonnelID se resuelve una sola vez en el login y viaja en el token:
// los filtros nunca vuelven a resolver la identidad del técnico por email.
type Claims struct {
	jwt.RegisteredClaims
	Kind        string `json:"kind"`
	Role        string `json:"role"`
	CompanyID   string `json:"company_id,omitempty"`
	BranchID    string `json:"branch_id,omitempty"`
	PersonnelID string `json:"personnel_id,omitempty"`
}

// Generate genera un token JWT firmado con el alcance completo del actor.
func Generate(secret string, sub Subject, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Kind:        sub.Kind,
		Role:        sub.Role,
		CompanyID:   sub.CompanyID,
		BranchID:    sub.BranchID,
		PersonnelID: sub.PersonnelID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el Subject.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Subject, error) {
	if secret == "" {
		return Subject{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Subject{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Subject{}, fmt.Errorf("claims inválidos")
	}
	return Subject{
		AccountID:   claims.Subject,
		Kind:        claims.Kind,
		Role:        claims.Role,
		CompanyID:   claims.CompanyID,
		BranchID:    claims.BranchID,
		PersonnelID: claims.PersonnelID,
	}, nil
}
