// Command envokin validates configuration files against a schema file.
//
//	envokin check --schema schema.yaml .env
//	envokin check --schema schema.yaml --strict --output json config.json
//	envokin check --schema schema.yaml --sqlite settings.db
//	envokin detect .env
//
// A schema file maps keys to kind names (host, port, url, email, array,
// "array:separator=,", ip, ip4, ip6, string, number, boolean, json). It may
// be YAML, TOML or JSON, and may also name the custom rules listed by
// "envokin rules" (duration, log-level, lowercase). Without a source
// argument, check validates the process environment.
package main
