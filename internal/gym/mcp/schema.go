package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
)

// schemaArea groups the tables of one part of the app, in the order the agent should read them.
type schemaArea struct {
	name   string
	tables []string
}

// users is left out on purpose, it holds password hashes.
var fitnessAreas = []schemaArea{
	{name: "Catalog", tables: []string{"muscle", "exercise"}},
	{name: "Programs", tables: []string{"program", "program_day", "program_exercise"}},
	{name: "Profile", tables: []string{"user_profile", "user_equipment"}},
	{name: "Workouts", tables: []string{"workout_session", "workout_exercise", "set_entry"}},
	{name: "Nutrition", tables: []string{"meal"}},
	{name: "Progress", tables: []string{"weight_entry", "daily_streak"}},
	{name: "Activity", tables: []string{"activity_event"}},
}

func fitnessTables() []string {
	var tables []string
	for _, area := range fitnessAreas {
		tables = append(tables, area.tables...)
	}
	return tables
}

type SchemaColumn struct {
	TableName  string
	ColumnName string
	DataType   string
	Nullable   bool
	Default    *string
	// References is "table.column" for foreign keys, empty otherwise.
	References string
}

type SchemaRepo struct {
	db *pgxpool.Pool
}

func NewSchemaRepo(db *pgxpool.Pool) *SchemaRepo {
	return &SchemaRepo{
		db: db,
	}
}

// FitnessColumns lists the columns of every fitness table with their foreign key targets.
func (r *SchemaRepo) FitnessColumns(ctx context.Context) (_ []SchemaColumn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mcp.fitness_columns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT c.table_name, c.column_name, c.data_type, c.is_nullable = 'YES', c.column_default,
			COALESCE(fk.ref_table || '.' || fk.ref_column, '')
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.table_name, kcu.column_name,
				ccu.table_name AS ref_table, ccu.column_name AS ref_column
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
			JOIN information_schema.constraint_column_usage ccu
				ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = 'public'
		) fk ON fk.table_name = c.table_name AND fk.column_name = c.column_name
		WHERE c.table_schema = 'public'
		  AND c.table_name = ANY($1)
		ORDER BY c.table_name, c.ordinal_position;
	`, fitnessTables())
	if err != nil {
		return nil, fmt.Errorf("fitness columns [query]: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (SchemaColumn, error) {
		var c SchemaColumn
		err := row.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.Nullable, &c.Default, &c.References)
		return c, err
	})
}

// formatFitnessSchema renders the columns as markdown, one section per app area.
// Tables missing from the database are skipped.
func formatFitnessSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Fitness DB Schema\n\nNo fitness tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	var b strings.Builder
	b.WriteString("# Fitness DB Schema\n\n")
	b.WriteString("Postgres schema public. Ids are text uuids except activity_event.id; timestamps are timestamptz in UTC.\n")

	for _, area := range fitnessAreas {
		var present []string
		for _, table := range area.tables {
			if len(byTable[table]) > 0 {
				present = append(present, table)
			}
		}
		if len(present) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n", area.name)
		for _, table := range present {
			fmt.Fprintf(&b, "\n### %s\n\n", table)
			b.WriteString("| Column | Type | Nullable | Default | References |\n")
			b.WriteString("|--------|------|----------|---------|------------|\n")
			for _, c := range byTable[table] {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
					c.ColumnName, c.DataType, yesNo(c.Nullable), orDash(c.Default), orDash(&c.References))
			}
		}
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
