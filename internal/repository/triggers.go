package repository

import (
	"fmt"

	"resto-erp-ws/internal/model"

	"gorm.io/gorm"
)

const notifyFunction = `
CREATE OR REPLACE FUNCTION erp_notify_change() RETURNS trigger AS $$
DECLARE
	row_id bigint;
BEGIN
	IF TG_OP = 'DELETE' THEN
		row_id := OLD.id;
	ELSE
		row_id := NEW.id;
	END IF;
	PERFORM pg_notify(
		TG_TABLE_NAME || '_changes',
		json_build_object('table', TG_TABLE_NAME, 'op', TG_OP, 'id', row_id)::text
	);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

// TriggerName is the change-notification trigger installed on a table.
func TriggerName(t model.Table) string {
	return "erp_notify_" + string(t)
}

// TriggerStatements returns the DDL that makes every table publish its row
// changes on the table's notification channel.
func TriggerStatements() []string {
	stmts := []string{notifyFunction}
	for _, t := range model.AllTables() {
		stmts = append(stmts,
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, TriggerName(t), t),
			fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH ROW EXECUTE FUNCTION erp_notify_change()`, TriggerName(t), t),
		)
	}
	return stmts
}

// InstallChangeTriggers installs the notification function and triggers.
func InstallChangeTriggers(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range TriggerStatements() {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("install change triggers: %w", err)
			}
		}
		return nil
	})
}
