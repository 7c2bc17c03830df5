package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"assets", "identifiers", "email_verifications", "departments", "admins"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password123"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		adminID := "ADM-001"
		var exists int
		if err := db.QueryRow("SELECT 1 FROM admins WHERE admin_id = $1", adminID).Scan(&exists); err == nil {
			fmt.Println("admin already exists:", adminID)
		} else {
			if _, err := db.Exec(
				"INSERT INTO admins (admin_id, name, email, password_hash, role, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, 'admin', true, now(), now())",
				adminID, "Default Admin", "admin@office.local", string(hash)); err != nil {
				log.Fatalf("failed to insert admin: %v", err)
			}
			if _, err := db.Exec(
				"INSERT INTO identifiers (namespace, value, created_at) VALUES ('admin', $1, now()), ('email', $2, now())",
				adminID, "admin@office.local"); err != nil {
				log.Fatalf("failed to reserve admin identifiers: %v", err)
			}
			fmt.Println("Seeded admin:", adminID)
		}

		deptID := "DEPT-IT"
		if err := db.QueryRow("SELECT 1 FROM departments WHERE department_id = $1", deptID).Scan(&exists); err == nil {
			fmt.Println("department already exists:", deptID)
		} else {
			if _, err := db.Exec(
				"INSERT INTO departments (department_id, department_name, section_name, employee_level, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, now(), now())",
				deptID, "Information Technology", "Infrastructure", "OS", "it@office.local", string(hash)); err != nil {
				log.Fatalf("failed to insert department: %v", err)
			}
			if _, err := db.Exec(
				"INSERT INTO identifiers (namespace, value, created_at) VALUES ('department', $1, now()), ('email', $2, now())",
				deptID, "it@office.local"); err != nil {
				log.Fatalf("failed to reserve department identifiers: %v", err)
			}
			fmt.Println("Seeded department:", deptID)
		}

		samples := []struct {
			ID, Name, Type, Status, Location, Condition string
		}{
			{"AST-0001", "Build Server", "system", "pending", "Server Room A", "excellent"},
			{"AST-0002", "Standing Desk", "table", "pending", "Floor 2", "good"},
			{"AST-0003", "Task Chair", "chair", "pending", "Floor 2", "fair"},
		}
		for _, a := range samples {
			if err := db.QueryRow("SELECT 1 FROM assets WHERE asset_id = $1", a.ID).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO assets (asset_id, asset_name, asset_type, status, location, condition, assigned_to, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())",
				a.ID, a.Name, a.Type, a.Status, a.Location, a.Condition, deptID); err != nil {
				log.Fatalf("failed to insert asset %s: %v", a.ID, err)
			}
			if _, err := db.Exec(
				"INSERT INTO identifiers (namespace, value, created_at) VALUES ('asset', $1, now())", a.ID); err != nil {
				log.Fatalf("failed to reserve asset id %s: %v", a.ID, err)
			}
			fmt.Println("Seeded asset:", a.ID)
		}

		fmt.Println("Seeding complete. Default password:", password)
	},
}
