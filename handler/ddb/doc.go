/*
Package ddb keeps handle registrations in an AWS DynamoDB table.

The handler follows a single-table design. Key attributes are expanded from
templates registered in the index map registry:

	registry.RegisterIndexMap[ddb.Item](map[string]string{
	    "PK": "HANDLE#{Handle}", // Becomes "HANDLE#1234567/abc:123"
	    "SK": "HANDLE#{Handle}",
	})

Writes are conditional, so concurrent writers cannot silently overwrite each
other:

	create  PutItem    attribute_not_exists(PK)  -> errors.ErrAlreadyExists
	update  UpdateItem attribute_exists(PK)      -> errors.ErrNotFound
	delete  DeleteItem attribute_exists(PK)      -> errors.ErrNotFound

Items carry EntityType "Handle" and RFC 3339 CreatedAt/UpdatedAt stamps
(strfmt.DateTime), so the table can be shared with other entity types.

The client is built from the dynamodb configuration section. Static
credentials are used when an access key is set; an endpoint override points
the client at DynamoDB Local:

	dynamodb:
	  region: us-east-1
	  table: handles
	  endpoint: http://localhost:8000

The backend registers itself as "dynamodb".
*/
package ddb
