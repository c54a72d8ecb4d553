package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const dumpSQL = "-- phpMyAdmin SQL Dump\n" +
	"SET FOREIGN_KEY_CHECKS=0;\n\n" +
	"CREATE TABLE `ci4ms_users` (\n" +
	"  `id` int(11) UNSIGNED NOT NULL AUTO_INCREMENT,\n" +
	"  `email` varchar(255) NOT NULL,\n" +
	"  `created_at` datetime DEFAULT NULL,\n" +
	"  PRIMARY KEY (`id`)\n" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
	"CREATE TABLE `ci4ms_posts` (\n" +
	"  `id` int(11) UNSIGNED NOT NULL AUTO_INCREMENT,\n" +
	"  `user_id` int(11) UNSIGNED NOT NULL,\n" +
	"  `title` varchar(255) COLLATE utf8mb4_unicode_ci NOT NULL,\n" +
	"  `price` decimal(10,2) DEFAULT NULL,\n" +
	"  `api_key` char(32) DEFAULT NULL,\n" +
	"  PRIMARY KEY (`id`),\n" +
	"  KEY `idx_user` (`user_id`),\n" +
	"  UNIQUE KEY `uq_title` (`title`)\n" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n" +
	"ALTER TABLE `ci4ms_posts`\n" +
	"  ADD CONSTRAINT `posts_user_fk` FOREIGN KEY (`user_id`) REFERENCES `ci4ms_users` (`id`) ON DELETE SET NULL ON UPDATE NO ACTION;\n\n" +
	"DELIMITER //\n" +
	"CREATE TRIGGER `trg_posts_ai` AFTER INSERT ON `ci4ms_posts` FOR EACH ROW BEGIN\n" +
	"  UPDATE `ci4ms_users` SET `created_at` = NOW() WHERE `id` = NEW.user_id;\n" +
	"END//\n" +
	"DELIMITER ;\n"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		prefix     string
		want       string
	}{
		{"strips prefix", "ci4ms_users", "ci4ms_", "users"},
		{"empty prefix", "ci4ms_users", "", "ci4ms_users"},
		{"prefix not present", "users", "ci4ms_", "users"},
		{"prefix only in the middle", "app_ci4ms_users", "ci4ms_", "app_ci4ms_users"},
		{"identifier equals prefix", "ci4ms_", "ci4ms_", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.identifier, tt.prefix); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.identifier, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestParseSchemaSingleLineTable(t *testing.T) {
	sql := "CREATE TABLE `ci4ms_users` (`id` INT UNSIGNED NOT NULL AUTO_INCREMENT, `name` VARCHAR(255), PRIMARY KEY (`id`)) ENGINE=InnoDB;"
	res, err := ParseSchema(sql, "ci4ms_")
	if err != nil {
		t.Fatal(err)
	}
	tables := res.Set.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	u := tables[0]
	if u.Name != "users" || u.RawName != "ci4ms_users" {
		t.Errorf("names = %q/%q, want users/ci4ms_users", u.Name, u.RawName)
	}
	if u.PrimaryKey != "id" {
		t.Errorf("primary key = %q, want id", u.PrimaryKey)
	}
	want := []Column{
		{Name: "id", Type: "INT", Unsigned: true, Nullable: false, AutoIncrement: true},
		{Name: "name", Type: "VARCHAR", Constraint: "255", Nullable: true},
	}
	if !reflect.DeepEqual(u.Columns, want) {
		t.Errorf("columns = %+v\nwant %+v", u.Columns, want)
	}
}

func TestParseSchemaDump(t *testing.T) {
	res, err := ParseSchema(dumpSQL, "ci4ms_")
	if err != nil {
		t.Fatal(err)
	}
	ops := res.Set.Operations
	kinds := make([]OpKind, len(ops))
	for i, op := range ops {
		kinds[i] = op.Kind
	}
	wantKinds := []OpKind{OpCreateTable, OpCreateTable, OpAddForeignKeys, OpCreateTrigger}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Fatalf("operation kinds = %v, want %v", kinds, wantKinds)
	}
	if ops[0].Table.Name != "users" || ops[1].Table.Name != "posts" {
		t.Errorf("tables out of source order: %s, %s", ops[0].Table.Name, ops[1].Table.Name)
	}

	posts := ops[1].Table
	if got := posts.ColumnNames(); !reflect.DeepEqual(got, []string{"id", "user_id", "title", "price", "api_key"}) {
		t.Errorf("posts columns = %v", got)
	}
	title := posts.Columns[2]
	if title.Nullable {
		t.Errorf("title should be NOT NULL even after COLLATE")
	}
	price := posts.Columns[3]
	if price.Type != "DECIMAL" || price.Constraint != "10,2" || !price.Nullable {
		t.Errorf("price = %+v", price)
	}

	fks := ops[2].ForeignKeys
	if len(fks) != 1 {
		t.Fatalf("expected 1 foreign key, got %d", len(fks))
	}
	fk := fks[0]
	if fk.Constraint != "posts_user_fk" || fk.Table != "posts" || fk.ReferencedTable != "users" {
		t.Errorf("foreign key = %+v", fk)
	}
	if fk.OnDelete != "SET NULL" || fk.OnUpdate != "NO ACTION" {
		t.Errorf("actions = %q/%q", fk.OnDelete, fk.OnUpdate)
	}

	tr := ops[3].Trigger
	if tr.Name != "trg_posts_ai" || tr.Timing != "AFTER" || tr.Event != "INSERT" || tr.Table != "ci4ms_posts" {
		t.Errorf("trigger = %+v", tr)
	}
	if !strings.Contains(tr.Body, "ON `posts` FOR EACH ROW") {
		t.Errorf("owner table not normalized in body: %s", tr.Body)
	}
	if !strings.Contains(tr.Body, "UPDATE `ci4ms_users`") {
		t.Errorf("only the owner table should be rewritten: %s", tr.Body)
	}
	if len(res.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings())
	}
}

func TestParseSchemaNoStatements(t *testing.T) {
	res, err := ParseSchema("SELECT 1;\n-- nothing to see\n", "ci4ms_")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Set.Empty() {
		t.Errorf("expected an empty set, got %d operations", len(res.Set.Operations))
	}
	noMatch := map[Category]bool{}
	for _, d := range res.Diagnostics {
		if d.Kind != NoMatch {
			t.Errorf("unexpected diagnostic %v", d)
			continue
		}
		noMatch[d.Category] = true
	}
	if len(res.Diagnostics) != 3 || len(noMatch) != 3 {
		t.Errorf("expected 3 NoMatch diagnostics, got %v", res.Diagnostics)
	}
}

func TestParseSchemaPartialStatements(t *testing.T) {
	tests := []struct {
		name        string
		sql         string
		cat         Category
		wantNoMatch bool
		wantMessage string
	}{
		{
			name:        "create table as select",
			sql:         "CREATE TABLE t AS SELECT 1;\n",
			cat:         CategoryTables,
			wantNoMatch: true,
			wantMessage: "found 1 CREATE TABLE statements, parsed 0",
		},
		{
			name:        "one of two tables parsed",
			sql:         "CREATE TABLE a (id INT);\nCREATE TABLE b AS SELECT 1;\n",
			cat:         CategoryTables,
			wantMessage: "found 2 CREATE TABLE statements, parsed 1",
		},
		{
			name:        "unsupported trigger timing",
			sql:         "CREATE TRIGGER t INSTEAD OF INSERT ON x FOR EACH ROW SET @a = 1;\n",
			cat:         CategoryTriggers,
			wantNoMatch: true,
			wantMessage: "found 1 CREATE TRIGGER statements, parsed 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseSchema(tt.sql, "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			var noMatch bool
			var partial []string
			for _, d := range res.Diagnostics {
				if d.Category != tt.cat {
					continue
				}
				switch d.Kind {
				case NoMatch:
					noMatch = true
				case PartialParse:
					partial = append(partial, d.Message)
				}
			}
			if noMatch != tt.wantNoMatch {
				t.Errorf("NoMatch = %v, want %v (%v)", noMatch, tt.wantNoMatch, res.Diagnostics)
			}
			if len(partial) != 1 || partial[0] != tt.wantMessage {
				t.Errorf("PartialParse messages = %q, want [%q]", partial, tt.wantMessage)
			}
		})
	}
}

func TestParseSchemaBlankInput(t *testing.T) {
	for _, in := range []string{"", "  \n\t"} {
		_, err := ParseSchema(in, "")
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Fatalf("ParseSchema(%q): expected *InputError, got %v", in, err)
		}
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("expected ErrEmptyInput in chain, got %v", err)
		}
	}
}

func TestParseSchemaIdempotent(t *testing.T) {
	a, err := ParseSchema(dumpSQL, "ci4ms_")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseSchema(dumpSQL, "ci4ms_")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs on identical input produced different results")
	}
}

func TestParseSchemaForeignKeyMismatch(t *testing.T) {
	sql := "CREATE TABLE `t` (`a` INT, `b` INT);\n" +
		"ALTER TABLE `t` ADD CONSTRAINT `fk_ab` FOREIGN KEY (`a`, `b`) REFERENCES `u` (`a`, `b`);\n"
	res, err := ParseSchema(sql, "")
	if err != nil {
		t.Fatal(err)
	}
	var partial, summary bool
	for _, d := range res.Diagnostics {
		if d.Category != CategoryForeignKeys {
			continue
		}
		switch d.Kind {
		case PartialParse:
			partial = true
		case Summary:
			summary = true
		}
	}
	if !partial || !summary {
		t.Errorf("expected summary and partial parse diagnostics, got %v", res.Diagnostics)
	}
	if res.Set.ForeignKeys() != nil {
		t.Errorf("composite foreign key should be left out")
	}
}
