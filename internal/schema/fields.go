package schema

// FieldType is the semantic type of a schema field, shared by the
// row-oriented record contract and the columnar fragment contract.
type FieldType string

const (
	TypeString            FieldType = "string"
	TypeTimestamp         FieldType = "timestamp"
	TypeNullableTimestamp FieldType = "nullable-timestamp"
	TypeInteger           FieldType = "integer"
	TypeBoolean           FieldType = "boolean"
)

// Field describes one ticket field.
type Field struct {
	Name string
	Type FieldType
}

// PartitionKey is the field whose value determines the output
// subdirectory a record is written to. It is represented by the
// directory structure in columnar output, not as a data column.
const PartitionKey = "market"

// Fields returns the full ordered field list of the ticket record.
// Columnar fragments must carry these fields in this order, minus the
// partition key.
func Fields() []Field {
	return []Field{
		{Name: "ticket_id", Type: TypeString},
		{Name: "created_at", Type: TypeTimestamp},
		{Name: "updated_at", Type: TypeTimestamp},
		{Name: "resolved_at", Type: TypeNullableTimestamp},
		{Name: "severity", Type: TypeString},
		{Name: "status", Type: TypeString},
		{Name: "category", Type: TypeString},
		{Name: "channel", Type: TypeString},
		{Name: "market", Type: TypeString},
		{Name: "dealer_id", Type: TypeString},
		{Name: "customer_id", Type: TypeString},
		{Name: "vin_last6", Type: TypeString},
		{Name: "model_series", Type: TypeString},
		{Name: "model_year", Type: TypeInteger},
		{Name: "sla_breached", Type: TypeBoolean},
	}
}

// FragmentFields returns the columnar fragment field list: Fields()
// with the partition key removed.
func FragmentFields() []Field {
	all := Fields()
	out := make([]Field, 0, len(all)-1)
	for _, f := range all {
		if f.Name == PartitionKey {
			continue
		}
		out = append(out, f)
	}
	return out
}
