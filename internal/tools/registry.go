package tools

// All returns the full tool set bound to a workspace, in the order the
// judges advertise them.
func All(workspace *Workspace) []Tool {
	return []Tool{
		NewGitListFilesTool(workspace),
		NewGitReadFileTool(workspace),
		NewReadLocalFileTool(workspace),
		NewListLocalDirectoryTool(workspace),
		NewZipListFilesTool(workspace),
		NewZipReadFileTool(workspace),
	}
}
