package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	sessionTable    = "session"
	colID           = "id"
	colIsDM         = "is_dm"
	colStart        = "start"
	colStop         = "stop"
	colIntention    = "intention"
	settingsTable   = "settings"
	colSettingKey   = "key"
	colSettingValue = "value"
)

var (
	sessionColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt64, Increment: true},
		{Name: colIsDM, Type: field.TypeInt},
		// Epoch milliseconds, stored as text.
		{Name: colStart, Type: field.TypeString},
		{Name: colStop, Type: field.TypeString, Nullable: true},
		{Name: colIntention, Type: field.TypeString, Nullable: true},
	}
	sessionSchema = &schema.Table{
		Name:       sessionTable,
		Columns:    sessionColumns,
		PrimaryKey: []*schema.Column{sessionColumns[0]},
	}

	settingsColumns = []*schema.Column{
		{Name: colSettingKey, Type: field.TypeString, Unique: true},
		{Name: colSettingValue, Type: field.TypeString},
	}
	settingsSchema = &schema.Table{
		Name:       settingsTable,
		Columns:    settingsColumns,
		PrimaryKey: []*schema.Column{settingsColumns[0]},
	}

	tables = []*schema.Table{sessionSchema, settingsSchema}
)

// migrate creates or upgrades the tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
