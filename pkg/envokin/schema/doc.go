/*
Package schema validates raw configuration records and coerces their values.

# Schemas

A Schema maps each key to an Entry: a built-in Kind or a Custom rule.

	s := schema.Schema{
	    "HOST":    schema.Host,
	    "PORT":    schema.Port,
	    "ORIGINS": schema.CommaList,
	    "FLAGS":   schema.JSON,
	    "MODE": schema.Func(
	        func(_ string, v any) bool { s, ok := v.(string); return ok && s != "" },
	        func(v any) any { return strings.ToUpper(v.(string)) },
	    ),
	}

# Built-in Kinds

	host               URL or IPv4/IPv6 string        unchanged
	port               integral number in [0, 65535]  int
	url                absolute URL string            unchanged
	email              local@domain.tld string        unchanged
	array              any slice                      unchanged
	array:separator=,  string                         []string, trimmed parts
	ip, ip4, ip6       address strings                unchanged
	string             string                         unchanged
	number             number or numeric string       float64
	boolean            bool, true/false/1/0/t/f, 0/1  bool
	json               composite value or JSON text   decoded value

# Strict and Lenient Mode

A key counts as not provided when its value is missing, nil, "", false, a
numeric zero or NaN. In strict mode such a key fails validation; in lenient
mode (the default) it is left out of the result.

# Errors

Every failure is a *errors.ValidationError naming the key. Its message is the
only text contract; the Kind field (ErrRequired, ErrCustomValidation,
ErrInvalidValue, ErrUnknownType) supports errors.Is.

# Named Rules

Schemas read from files hold only tag strings. Register Custom rules in a
Registry and pass it to Parse to resolve non built-in tags.
*/
package schema
