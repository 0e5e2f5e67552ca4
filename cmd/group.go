package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"appdock/internal/group"
	"appdock/internal/presentation"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage app groups",
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups and their members",
	RunE:  runGroupList,
}

var groupAddCmd = &cobra.Command{
	Use:   "add <group> [app...]",
	Short: "Create a group, or add apps to an existing one",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupAdd,
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <group> [app...]",
	Short: "Remove apps from a group, or the whole group",
	Long:  `With member names, remove drops those apps from the group. With just the group name, the group itself is deleted.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupRemove,
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename <group> <new-name>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupRename,
}

func init() {
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	groupCmd.AddCommand(groupRenameCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupList(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()

	formatter := presentation.NewFormatter(os.Stdout, jsonOut)
	return formatter.FormatGroups(presentation.FromGroups(e.groups.Groups()))
}

func runGroupAdd(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()
	return groupAdd(e, cmd, args)
}

// groupAdd works on a clone and commits by replacement; the stored
// group is never mutated in place.
func groupAdd(e *env, cmd *cobra.Command, args []string) error {
	name := args[0]
	existing := e.groups.Find(name)
	work := group.New(e.rt, name)
	if existing != nil {
		work = existing.Clone()
	}

	for _, query := range args[1:] {
		entry, err := resolveOne(e, cmd, query)
		if err != nil {
			return err
		}
		if !work.Add(entry) {
			fmt.Fprintf(os.Stderr, "%q is already in %q\n", entry.Name(), name)
		}
	}

	if existing == nil {
		return e.groups.Add(work)
	}
	return e.groups.Replace(name, work)
}

func runGroupRename(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()

	oldName, newName := args[0], args[1]
	g := e.groups.Find(oldName)
	if g == nil {
		return fmt.Errorf("no group named %q", oldName)
	}
	if e.groups.Find(newName) != nil {
		return fmt.Errorf("group %q already exists", newName)
	}

	renamed := g.Clone()
	renamed.SetName(newName)
	return e.groups.Replace(oldName, renamed)
}

func runGroupRemove(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()
	return groupRemove(e, cmd, args)
}

func groupRemove(e *env, cmd *cobra.Command, args []string) error {
	name := args[0]
	if len(args) == 1 {
		if !e.groups.Remove(name) {
			return fmt.Errorf("no group named %q", name)
		}
		return nil
	}

	g := e.groups.Find(name)
	if g == nil {
		return fmt.Errorf("no group named %q", name)
	}
	work := g.Clone()
	for _, query := range args[1:] {
		entry, err := resolveOne(e, cmd, query)
		if err != nil {
			return err
		}
		if !work.Remove(entry) {
			fmt.Fprintf(os.Stderr, "%q is not in %q\n", entry.Name(), name)
		}
	}
	return e.groups.Replace(name, work)
}
