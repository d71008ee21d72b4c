package constants

// User-facing message text shared by the CLI commands and the TUI handlers.
const (
	MessageAddSuccess  = "New client added: %s"
	MessageEditSuccess = "Edited Client: %s"

	MessageDuplicateClient = "This client already exists in the FitFlow."
	MessageDuplicatePhone  = "The phone number provided already exists in FitFlow."

	MessageScheduleConflictAdded  = "Note: The client has been added, but there are schedule conflicts:\n\n"
	MessageScheduleConflictEdited = "Note: The client has been edited, but there are schedule conflicts:\n\n"

	MessageListSuccess   = "Listed all clients"
	MessageListEmpty     = "No clients found, start adding clients using the Add command!"
	MessageClientsListed = "%d clients listed!"
)
