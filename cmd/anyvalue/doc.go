// Command anyvalue calls exported WebAssembly functions through anyvalue
// functors.
//
//	anyvalue describe -f anyvalue.yaml
//	anyvalue call -f anyvalue.yaml 1 2 3
//	anyvalue call -f anyvalue.yaml --export tick --workers 8 "" "" ""
//	anyvalue interactive -f anyvalue.yaml
//
// call wraps the bound export in functor.Threadsafe and spreads the inputs
// over the configured number of workers. Results print one per line in input
// order as "input<TAB>result".
package main
