// Package harness runs HTTP conformance scenarios against the todo API.
//
// Each scenario runs against a fresh temporary database and an in-process
// handler, so runs are isolated and request ids are deterministic.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: buy-milk
//	description: "Create, complete, and delete a todo"
//	steps:
//	  - request:
//	      method: POST
//	      path: /todos
//	      body: { title: "Buy milk" }
//	    expect:
//	      status: 201
//	      body: { id: 1, completed: false }
//	  - request:
//	      method: PUT
//	      path: /todos/1
//	      raw_body: "{not json"
//	    expect:
//	      status: 400
//
// # Matching
//
// expect.status must equal the response status. expect.body is a subset
// match: every key present in the expectation must be present in the
// response with an equal value, and extra response keys are ignored.
// Arrays match element-wise and must have the same length. A string
// expectation is compared against a non-JSON response body verbatim.
// Set expect.empty_body to require a response with no body.
//
// # Golden Files
//
// The full response trace of a run can be snapshotted with RunWithGolden
// (tests) or MarshalSnapshot (the "todod test" command).
package harness
