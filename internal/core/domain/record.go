package domain

import "strings"

// Kind identifies one of the four record types sharing the generic CRUD
// contract.
type Kind string

const (
	KindEmployees    Kind = "employees"
	KindClients      Kind = "clients"
	KindProducts     Kind = "products"
	KindTransactions Kind = "transactions"
)

// Record is a generic mapping from wire field name to scalar value. It is the
// shape every kind shares; per-kind structure lives in the Schema, not in
// bespoke structs.
type Record map[string]any

// FieldType declares the scalar type a field carries, so the storage layer
// can coerce JSON-decoded values to the column type.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldNumber
	FieldString
)

// Field is one named, typed column of a resource kind.
type Field struct {
	Name string
	Type FieldType
}

// Schema declares everything the contract engine needs to know about a
// resource kind: its ordered fields, which of them are mandatory on create
// and on update, and which one is the primary key. The required-on-update
// sets intentionally differ per kind; they are configuration, not a shared
// rule.
type Schema struct {
	Kind             Kind
	Singular         string
	Table            string
	PrimaryKey       string
	Fields           []Field
	RequiredOnCreate []string
	RequiredOnUpdate []string
}

// Column maps a wire field name to its database column name.
func (s Schema) Column(field string) string {
	return strings.ToLower(field)
}

// FieldByName returns the field declaration for a wire name.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Schemas is the registry of all resource kinds served by the API. Field
// names follow the wire contract of the original service.
var Schemas = map[Kind]Schema{
	KindEmployees: {
		Kind:       KindEmployees,
		Singular:   "employee",
		Table:      "employees",
		PrimaryKey: "employee_ID",
		Fields: []Field{
			{Name: "employee_ID", Type: FieldInt},
			{Name: "name", Type: FieldString},
		},
		RequiredOnCreate: []string{"employee_ID", "name"},
		RequiredOnUpdate: []string{"name"},
	},
	KindClients: {
		Kind:       KindClients,
		Singular:   "client",
		Table:      "clients",
		PrimaryKey: "client_ID",
		Fields: []Field{
			{Name: "client_ID", Type: FieldInt},
			{Name: "name", Type: FieldString},
			{Name: "email", Type: FieldString},
			{Name: "phone", Type: FieldString},
			{Name: "client_manager_employee_ID", Type: FieldInt},
		},
		RequiredOnCreate: []string{"client_ID", "name", "email", "phone", "client_manager_employee_ID"},
		RequiredOnUpdate: []string{"name", "email", "phone", "client_manager_employee_ID"},
	},
	KindProducts: {
		Kind:       KindProducts,
		Singular:   "product",
		Table:      "products",
		PrimaryKey: "product_ID",
		Fields: []Field{
			{Name: "product_ID", Type: FieldInt},
			{Name: "product_type", Type: FieldString},
		},
		RequiredOnCreate: []string{"product_ID", "product_type"},
		RequiredOnUpdate: []string{"product_type"},
	},
	KindTransactions: {
		Kind:       KindTransactions,
		Singular:   "transaction",
		Table:      "transactions",
		PrimaryKey: "transaction_ID",
		Fields: []Field{
			{Name: "transaction_ID", Type: FieldInt},
			{Name: "client_ID", Type: FieldInt},
			{Name: "product_ID", Type: FieldInt},
			{Name: "transaction_amount", Type: FieldNumber},
			{Name: "transaction_date", Type: FieldString},
		},
		RequiredOnCreate: []string{"transaction_ID", "client_ID", "product_ID", "transaction_amount", "transaction_date"},
		RequiredOnUpdate: []string{"client_ID", "product_ID", "transaction_amount", "transaction_date"},
	},
}

// IsMissing reports whether a payload value counts as absent under the
// required-field policy. The original service treated empty strings and
// numeric zeroes the same as omitted fields; that behaviour is part of the
// wire contract and is preserved here, even though it rejects a legitimate 0.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case float32:
		return t == 0
	case int:
		return t == 0
	case int32:
		return t == 0
	case int64:
		return t == 0
	default:
		return false
	}
}
