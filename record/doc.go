// Package record accumulates provenance metadata for a single
// data-processing job: the input and output files it touched, its
// parameters, and when it completed.
//
// A Record is built with AddInput, AddOutput and AddParam while the job
// runs and handed to Finalize once the job is done. Finalize fills in the
// SHA-1 digest of every entry that lacks one, using an injected
// digester.Digester, and writes the record as an indented JSON document:
//
//	{
//	    "inputs": [{"path": "a.txt", "sha1": "..."}],
//	    "parameters": {"threshold": 5},
//	    "outputs": [{"path": "b.txt", "sha1": "..."}],
//	    "date": "2023-01-01",
//	    "time": "12:00"
//	}
//
// A Record is owned by one job and is not safe for concurrent use.
package record
