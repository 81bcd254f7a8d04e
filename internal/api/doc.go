// Package api serves the todo resource over HTTP/JSON.
//
// Routes:
//
//	GET    /            plain-text welcome message
//	GET    /todos       list every todo
//	POST   /todos       create a todo
//	GET    /todos/{id}  fetch one todo
//	PUT    /todos/{id}  partially update a todo
//	DELETE /todos/{id}  delete a todo
//
// {id} must be a non-negative decimal integer; any other segment is treated
// as an unmatched route. Handlers never retry: each request is a single
// attempt against the Repository.
package api
