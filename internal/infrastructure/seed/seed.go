// Package seed carga los datos iniciales (YAML) de los almacenes en memoria.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

//go:embed seed.yaml
var defaultSeed []byte

const dateLayout = "2006-01-02"

// Data datos semilla ya convertidos a entidades.
type Data struct {
	Employees        []entity.Employee
	Catalog          []entity.PublicPolicy
	AdminPolicies    []entity.AdminPolicy
	CustomerPolicies []entity.CustomerPolicy
}

type fileEmployee struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Company  string `yaml:"company"`
}

type filePublicPolicy struct {
	ID           string          `yaml:"id"`
	Name         string          `yaml:"name"`
	Company      string          `yaml:"company"`
	Category     string          `yaml:"category"`
	Coverage     string          `yaml:"coverage"`
	Premium      decimal.Decimal `yaml:"premium"`
	Description  string          `yaml:"description"`
	Features     []string        `yaml:"features"`
	Requirements []string        `yaml:"requirements"`
	Image        string          `yaml:"image"`
}

type fileAdminPolicy struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Type     string          `yaml:"type"`
	Coverage string          `yaml:"coverage"`
	Premium  decimal.Decimal `yaml:"premium"`
	Terms    string          `yaml:"terms"`
}

type fileCustomerPolicy struct {
	ID           string          `yaml:"id"`
	CustomerName string          `yaml:"customer_name"`
	PolicyName   string          `yaml:"policy_name"`
	Status       string          `yaml:"status"`
	StartDate    string          `yaml:"start_date"`
	Premium      decimal.Decimal `yaml:"premium"`
	NextPayment  string          `yaml:"next_payment"`
}

type file struct {
	Employees        []fileEmployee       `yaml:"employees"`
	Catalog          []filePublicPolicy   `yaml:"catalog"`
	AdminPolicies    []fileAdminPolicy    `yaml:"admin_policies"`
	CustomerPolicies []fileCustomerPolicy `yaml:"customer_policies"`
}

// Default devuelve la semilla embebida en el binario.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// Load lee la semilla de path; con path vacío usa la embebida.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodifica y valida un documento YAML de semilla.
func Parse(raw []byte) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: yaml inválido: %w", err)
	}
	out := &Data{}

	seen := map[string]bool{}
	for _, e := range f.Employees {
		if !entity.ValidRole(e.Role) {
			return nil, fmt.Errorf("seed: empleado %s con rol desconocido %q", e.ID, e.Role)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("seed: empleado %s duplicado", e.ID)
		}
		seen[e.ID] = true
		out.Employees = append(out.Employees, entity.Employee(e))
	}

	for _, p := range f.Catalog {
		out.Catalog = append(out.Catalog, entity.PublicPolicy(p))
	}

	seen = map[string]bool{}
	for _, p := range f.AdminPolicies {
		if !entity.ValidPolicyType(p.Type) {
			return nil, fmt.Errorf("seed: póliza %s con tipo desconocido %q", p.ID, p.Type)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("seed: póliza %s duplicada", p.ID)
		}
		seen[p.ID] = true
		out.AdminPolicies = append(out.AdminPolicies, entity.AdminPolicy{
			ID:       p.ID,
			Name:     p.Name,
			Type:     p.Type,
			Coverage: p.Coverage,
			Premium:  p.Premium,
			Terms:    p.Terms,
		})
	}

	for _, p := range f.CustomerPolicies {
		status := entity.CustomerPolicyStatus(p.Status)
		switch status {
		case entity.CustomerPolicyActive, entity.CustomerPolicyPending, entity.CustomerPolicyClaimed:
		default:
			return nil, fmt.Errorf("seed: póliza de cliente %s con estado desconocido %q", p.ID, p.Status)
		}
		start, err := parseDate(p.StartDate)
		if err != nil {
			return nil, fmt.Errorf("seed: póliza de cliente %s start_date: %w", p.ID, err)
		}
		next, err := parseDate(p.NextPayment)
		if err != nil {
			return nil, fmt.Errorf("seed: póliza de cliente %s next_payment: %w", p.ID, err)
		}
		out.CustomerPolicies = append(out.CustomerPolicies, entity.CustomerPolicy{
			ID:           p.ID,
			CustomerName: p.CustomerName,
			PolicyName:   p.PolicyName,
			Status:       status,
			StartDate:    start,
			Premium:      p.Premium,
			NextPayment:  next,
		})
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
