package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Harden applies idempotent schema hardening on top of AutoMigrate:
// - Money column types (NUMERIC(12,2))
// - CHECK constraints backing the ledger invariants (quantity > 0,
//   service XOR product per line, non-negative money)
// - Unique index making a consumption line billable at most once
// - Foreign key: lineas_factura.linea_descargo_id → lineas_descargo.id
func Harden() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		alters := []string{
			`ALTER TABLE servicios        ALTER COLUMN precio_base      TYPE numeric(12,2)`,
			`ALTER TABLE productos        ALTER COLUMN precio_base      TYPE numeric(12,2)`,
			`ALTER TABLE descargos        ALTER COLUMN total            TYPE numeric(12,2)`,
			`ALTER TABLE lineas_descargo  ALTER COLUMN precio_unitario  TYPE numeric(12,2)`,
			`ALTER TABLE lineas_descargo  ALTER COLUMN subtotal_sin_iva TYPE numeric(12,2)`,
			`ALTER TABLE facturas         ALTER COLUMN subtotal         TYPE numeric(12,2)`,
			`ALTER TABLE facturas         ALTER COLUMN impuesto         TYPE numeric(12,2)`,
			`ALTER TABLE facturas         ALTER COLUMN total_general    TYPE numeric(12,2)`,
			`ALTER TABLE lineas_factura   ALTER COLUMN iva              TYPE numeric(12,2)`,
			`ALTER TABLE lineas_factura   ALTER COLUMN total_con_iva    TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_lineas_factura_linea_descargo ON lineas_factura (linea_descargo_id)`,
			`CREATE INDEX IF NOT EXISTS idx_descargos_paciente ON descargos (paciente_id)`,
			`CREATE INDEX IF NOT EXISTS idx_lineas_descargo_descargo ON lineas_descargo (descargo_id)`,
			`CREATE INDEX IF NOT EXISTS idx_facturas_paciente ON facturas (paciente_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		fk := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'lineas_factura'::regclass
		  AND conname  = 'fk_lineas_factura_linea_descargo'
	) THEN
		ALTER TABLE lineas_factura
		ADD CONSTRAINT fk_lineas_factura_linea_descargo
		FOREIGN KEY (linea_descargo_id)
		REFERENCES lineas_descargo(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`
		if err := tx.Exec(fk).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		checks := []string{
			// Exactly one of servicio_id/producto_id per consumption line
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'lineas_descargo'::regclass
					  AND conname  = 'chk_lineas_descargo_servicio_xor_producto'
				) THEN
					ALTER TABLE lineas_descargo
					ADD CONSTRAINT chk_lineas_descargo_servicio_xor_producto
					CHECK ((servicio_id IS NULL) <> (producto_id IS NULL));
				END IF;
			END $$;`,
			// Quantity strictly positive
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'lineas_descargo'::regclass
					  AND conname  = 'chk_lineas_descargo_cantidad_pos'
				) THEN
					ALTER TABLE lineas_descargo
					ADD CONSTRAINT chk_lineas_descargo_cantidad_pos
					CHECK (cantidad > 0);
				END IF;
			END $$;`,
			// Non-negative catalog prices
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'servicios'::regclass
					  AND conname  = 'chk_servicios_precio_base_nonneg'
				) THEN
					ALTER TABLE servicios
					ADD CONSTRAINT chk_servicios_precio_base_nonneg
					CHECK (precio_base >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'productos'::regclass
					  AND conname  = 'chk_productos_precio_base_nonneg'
				) THEN
					ALTER TABLE productos
					ADD CONSTRAINT chk_productos_precio_base_nonneg
					CHECK (precio_base >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
