/*
Package rest holds the pieces shared by every resource API.

# Model

Models in rest/model are the JSON shapes returned by the API. Each has a
BuildFromService method that fills it from a service-level document, and
each request body has a typed input with a Validate method that rejects
missing required fields.

# Connector

Connector in rest/data is the interface route handlers use to reach the
store. DBConnector talks to MongoDB through a web420.Environment;
MockConnector keeps documents in memory for route tests.

# Errors

Handlers return one of three error kinds, and ErrorResponse turns each
into a status code and a {"message": ...} body:

	NotFoundError    401  Invalid <resource>Id
	StoreError       501  MongoDB Exception: <error>
	ValidationError  400  Validation Exception: <details>

Anything else is reported as 500 Server Exception.
*/
package rest
