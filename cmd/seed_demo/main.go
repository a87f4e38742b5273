// seed_demo importa clientes desde un CSV exportado de sistemas legados
// (codificación Latin-1) y los carga en la tabla customers con la misma
// regla de upsert por teléfono que usa el flujo de servicios.
//
// Uso: go run ./cmd/seed_demo <company_id> [ruta/clientes.csv]
// Por defecto busca clientes.csv en el directorio actual.
// Columnas esperadas: nombre, telefono, direccion, ciudad, barrio.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/servitec-api/internal/domain/entity"
	"github.com/jhoicas/servitec-api/internal/infrastructure/postgres"
	"github.com/jhoicas/servitec-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_demo <company_id> [clientes.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "clientes.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Exportes de Excel/Access en Windows vienen en ISO-8859-1, no UTF-8.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	repo := postgres.NewCustomerRepository(pool)
	created, updated, skipped := 0, 0, 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV (línea %d): %v\n", line+1, err)
			os.Exit(1)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "nombre") {
			continue // cabecera
		}
		if len(record) < 2 {
			skipped++
			continue
		}

		name := strings.TrimSpace(record[0])
		phone := strings.TrimSpace(record[1])
		if name == "" || phone == "" {
			skipped++
			continue
		}

		c := &entity.Customer{
			CompanyID: companyID,
			Name:      name,
			Phone:     phone,
		}
		if len(record) > 2 {
			c.Address = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			c.City = strings.TrimSpace(record[3])
		}
		if len(record) > 4 {
			c.District = strings.TrimSpace(record[4])
		}

		existing, err := repo.GetByCompanyAndPhone(ctx, companyID, phone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Buscar cliente %q: %v\n", phone, err)
			os.Exit(1)
		}
		now := time.Now()
		if existing != nil {
			existing.Name = c.Name
			existing.Address = c.Address
			existing.City = c.City
			existing.District = c.District
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				fmt.Fprintf(os.Stderr, "Actualizar cliente %q: %v\n", phone, err)
				os.Exit(1)
			}
			updated++
			continue
		}
		c.ID = uuid.New().String()
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := repo.Create(ctx, c); err != nil {
			fmt.Fprintf(os.Stderr, "Insertar cliente %q: %v\n", phone, err)
			os.Exit(1)
		}
		created++
	}

	fmt.Printf("Importación terminada: %d creados, %d actualizados, %d omitidos\n", created, updated, skipped)
}
