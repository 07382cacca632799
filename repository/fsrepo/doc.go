/*
Package fsrepo exposes a directory of exported repository objects as
handlemodels.Object values.

Layout:

	<root>/
	    abc%3A123/          object "abc:123" (PID query-escaped)
	        MODS.xml        datastream "MODS"
	        DC.xml          datastream "DC"

Datastream writes go through a temporary file and a rename, so a failed
write never leaves a truncated datastream behind.
*/
package fsrepo
