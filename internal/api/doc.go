// Package api is the client for the remote users/todos REST API
// (jsonplaceholder by default).
//
// Four routes are used:
//
//	GET    /users
//	GET    /users/{userId}/todos
//	DELETE /todos/{id}
//	PUT    /todos/{id}
//
// Any 2xx status is success. Other statuses come back as *errors.APIError
// matching errors.ErrRemoteRejected; transport failures match
// errors.ErrTransport and undecodable bodies errors.ErrMalformedResponse.
// Nothing is retried.
package api
