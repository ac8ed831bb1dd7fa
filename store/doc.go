// Package store binds the LTP property/table readers to the PST/OST
// message-store domain model: File, Folder, Message, Recipient,
// Attachment, Body, and the PropertySet facade (spec §3 "Domain
// entities", §4.8 "Message store").
package store
