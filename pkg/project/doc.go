// Package project reads and writes network project files.
//
// # Overview
//
// A project file holds a network snapshot: the sites and the links between
// them, together with whatever planning results have been computed so far
// (flow, capacity, cost and delay). Files can be re-imported and yield the
// same network, field for field.
//
// # Format
//
// JSON and YAML share one layout. Both top-level arrays are required:
//
//	{
//	  "nodes": [
//	    {"id": 0, "name": "Berlin", "position": [120, 80], "cost": 500}
//	  ],
//	  "edges": [
//	    {"from_id": 0, "to_id": 1, "capacity": 16, "length": 142.3,
//	     "cost": 250, "flow": 10, "delay": 2}
//	  ]
//	}
//
// JSON has no literal for infinity, so a saturated delay is written as the
// string "inf". "Infinity" and "+Inf" are accepted on input. YAML uses its
// native .inf.
//
// # Import
//
// [Import] picks the codec from the file extension (.json, .yaml, .yml).
// [ReadJSON] and [ReadYAML] decode from any io.Reader. Every decoded network
// is validated before it is returned, so callers can pass it straight to the
// planning stages.
//
// # Export
//
// [Export], [WriteJSON] and [WriteYAML] are the inverse operations. They do
// not validate; a network that fails validation can still be saved for
// later repair.
package project
