/*
Package logging sends log entries from guest code to the host runtime.

Entries are routed to the host's logging capability, one waPC function per
level. Delivery is best effort. The invoke package never logs; callers that
want a record of their commands log around their own calls.
*/
package logging
