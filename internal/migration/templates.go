package migration

import "text/template"

var funcs = template.FuncMap{
	"php":        phpString,
	"addslashes": addslashes,
}

const header = `<?php

namespace {{.Namespace}};

use CodeIgniter\Database\Migration;

class {{.Class}} extends Migration
{
`

var createTableTmpl = template.Must(template.New("create_table").Funcs(funcs).Parse(header +
	`    public function up()
    {
        $this->forge->addField([
{{- range .Op.Table.Columns}}
            '{{php .Name}}' => [
                'type' => '{{php .Type}}',
{{- if .Constraint}}
                'constraint' => '{{php .Constraint}}',
{{- end}}
{{- if .Unsigned}}
                'unsigned' => true,
{{- end}}
{{- if .AutoIncrement}}
                'auto_increment' => true,
{{- end}}
{{- if .Nullable}}
                'null' => true,
{{- end}}
            ],
{{- end}}
        ]);
{{- if .Op.Table.PrimaryKey}}
        $this->forge->addKey('{{php .Op.Table.PrimaryKey}}', true);
{{- end}}
        $this->forge->createTable('{{php .Op.Table.Name}}');
    }

    public function down()
    {
        $this->forge->dropTable('{{php .Op.Table.Name}}');
    }
}
`))

// addForeignKey takes onUpdate before onDelete; processIndexes applies the
// keys to an existing table.
var addForeignKeysTmpl = template.Must(template.New("add_foreign_keys").Funcs(funcs).Parse(header +
	`    public function up()
    {
{{- range .Groups}}
{{- range .Keys}}
        $this->forge->addForeignKey('{{php .Column}}', '{{php .ReferencedTable}}', '{{php .ReferencedColumn}}', '{{php .OnUpdate}}', '{{php .OnDelete}}', '{{php .Constraint}}');
{{- end}}
        $this->forge->processIndexes('{{php .Table}}');
{{- end}}
    }

    public function down()
    {
{{- range .Groups}}
{{- range .Keys}}
        $this->forge->dropForeignKey('{{php .Table}}', '{{php .Constraint}}');
{{- end}}
{{- end}}
    }
}
`))

var createTriggerTmpl = template.Must(template.New("create_trigger").Funcs(funcs).Parse(header +
	`    public function up()
    {
        $this->db->query(
            '{{addslashes .Op.Trigger.Body}}'
        );
    }

    public function down()
    {
        $this->db->query('DROP TRIGGER IF EXISTS ` + "`{{php .Op.Trigger.Name}}`" + `;');
    }
}
`))
