// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the catalogue stores.

Series rows carry their categories through a json_agg sub-query so listings
and lookups need a single round-trip. Counters are only ever changed with
in-place arithmetic (col = col + $1). Multi-table deletes run inside one
transaction as explicit ordered steps; no cascade is relied on.
*/
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// updateJunction clears every link of id in table, then batch inserts vals.
func updateJunction(context context.Context, transaction pgx.Tx, table, idCol, valCol, id string, vals []string) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idCol)
	if _, err := transaction.Exec(context, delQuery, id); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", table, err)
	}

	if len(vals) == 0 {
		return nil
	}

	insQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", table, idCol, valCol)
	batch := &pgx.Batch{}
	for _, value := range vals {
		batch.Queue(insQuery, id, value)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert into %s: %w", table, err)
	}

	return nil
}
