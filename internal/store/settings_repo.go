package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// settingsRepo implements SettingsRepo over the settings table.
type settingsRepo struct {
	drv *entsql.Driver
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder.Select(colSettingValue).
		From(builder.Table(settingsTable)).
		Where(entsql.EQ(colSettingKey, key)).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder.Insert(settingsTable).
		Columns(colSettingKey, colSettingValue).
		Values(key, value).
		OnConflict(
			entsql.ConflictColumns(colSettingKey),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	query, args := builder.Delete(settingsTable).
		Where(entsql.EQ(colSettingKey, key)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}
