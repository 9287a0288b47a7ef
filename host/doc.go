// Package host runs WASM guests against the string-message host functions.
//
// An Executor owns a wazero runtime, the record table and the adapter behind
// it, and the host module exporting string_create_empty, string_init,
// string_set_data, string_read_data, string_release, string_stats and
// log_message. Guests are loaded with LoadModule and driven through their
// own exports with Instance.Call.
package host
