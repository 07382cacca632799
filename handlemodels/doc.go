/*
Package handlemodels defines the data structures shared by handlestore packages.

Key Types:

Object and Datastream:
The repository side of the contract. An Object has an identifier and named
datastreams whose content can be read and replaced:

	ds, ok := obj.Datastream("MODS")
	content, err := ds.Content()
	err = ds.SetContent(updated)

HandleRef:
Operations that accept "a handle or the object it belongs to" take a HandleRef:

	handlemodels.RawHandle("1234567/abc:123")
	handlemodels.FromObject(obj)

Outcome:
Metadata operations report through an Outcome instead of an error:

	type Outcome struct {
	    Success bool
	    Message *Message // Text, Substitutions, Severity
	}

HandleRecord:
The registration a backend keeps for a handle (handle, target, pid, timestamps).
*/
package handlemodels
