/*
Package enumerate declares closed sets of named constant values, Enumerations,
and wires them into the fields of structs.

An Enumeration maps symbolic keys to codes and human-readable labels:

	var RelationshipStatus = enumerate.MustNew("relationship_status", []enumerate.Value[int]{
		{Key: "married", Code: 1, Label: "Married"},
		{Key: "single", Code: 2},
	})

	RelationshipStatus.List()        // [1 2]
	RelationshipStatus.Humanize(2)   // "Single"
	RelationshipStatus.Humanize(9)   // "9"

An Attribute associates an Enumeration with a struct field,
providing validation, humanized display, predicates, scope names
and, optionally, per-value behavior objects:

	status := enumerate.MustAttribute("RelationshipStatus", RelationshipStatus,
		enumerate.WithHelpers(), enumerate.WithScopes(), enumerate.Required())

	status.Validate(u.RelationshipStatus)
	status.Is(u.RelationshipStatus, "married")

A Registry records Enumerations by name and Attributes by struct type,
so validators, database callbacks and HTTP handlers can find them.
Package postgres turns Attributes into GORM scopes, callbacks and constraints;
package validate integrates with go-playground/validator.
*/
package enumerate
