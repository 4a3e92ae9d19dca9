// Package config loads the YAML document that drives the anyvalue CLI.
//
// Documents are fetched through github.com/viant/afs, so any afs URL works:
//
//	module: filters.wasm
//	function: clamp
//	params: [int32]
//	result: int8
//	workers: 10
//	inputs: ["1", "300"]
//	log:
//	  level: debug
//
// When params and results are omitted the signature is inferred from the
// module.
package config
