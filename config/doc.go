// Package config turns files and flags into the values the rest of the module is built from:
// a circulation.Policy loaded from YAML, and the OpenTelemetry providers plus adapters that the
// journal and the desk report into.
package config
