package config

import "github.com/spf13/cobra"

const anonymousAnnotation = "crmctl.anonymous"

// Anonymous marks cmd, and every command below it, as usable without a session.
func Anonymous(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[anonymousAnnotation] = "true"
	return cmd
}

// RequiresSession reports whether cmd needs a stored credential to run.
func RequiresSession(cmd *cobra.Command) bool {
	if !cmd.Runnable() {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[anonymousAnnotation] == "true" {
			return false
		}
		switch c.Name() {
		case "help", "completion", "version":
			return false
		}
	}
	return true
}
