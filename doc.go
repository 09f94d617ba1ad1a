// Package jsl compiles declarative field trees into JSON Schema
// documents.
//
// A caller describes a data shape as a tree of typed field descriptors
// and compiles the tree's root into a schema: a nested mapping of
// constraint keywords, with repeated named documents deduplicated into
// a shared definitions table.
//
// # Packages
//
//   - field: the field-node hierarchy and the compile/walk engine
//   - document: a concrete document type built from an ordered field list
//   - registry: the injectable name registry consulted by references
//   - loader: YAML/JSON definition files decoded into documents
//   - encode: JSON/YAML rendering of compiled schemas
//
// # Usage
//
//	login, _ := field.NewString(field.String{
//		Base:      field.Base{Required: true},
//		Pattern:   "^[a-z]+$",
//	})
//	user, _ := document.New(document.Config{
//		Name:   "User",
//		Fields: []field.Prop{{Name: "login", Field: login}},
//	})
//	schema, _ := user.Schema()
//
// Documents may reference each other by name through a registry, or
// themselves through the self token; compilation terminates on cyclic
// document graphs by emitting $ref pointers into the definitions table.
//
// The engine only produces schemas; validating data instances against
// them is out of scope.
package jsl
