package main

import (
	"context"
	"os"

	"github.com/aretw0/axtree/internal/cli"
	"github.com/aretw0/axtree/internal/dispatch"
	"github.com/aretw0/axtree/pkg/domain"
	"github.com/spf13/cobra"
)

// valueFlags are passed to the dispatcher as typed by the user; it
// coerces and validates them.
var valueFlags = []struct {
	name, usage string
}{
	{dispatch.OptAction, "Invoke the named action"},
	{dispatch.OptSetText, "Replace the text of the element"},
	{dispatch.OptSetTextFile, "Replace the text of the element with the content of a file"},
	{dispatch.OptSetValue, "Set the numeric value of the element"},
	{dispatch.OptMouseClick, "Click at x,y"},
	{dispatch.OptMouseDoubleClick, "Double click at x,y"},
	{dispatch.OptMousePress, "Press the button at x,y"},
	{dispatch.OptMouseRelease, "Release the button at x,y"},
	{dispatch.OptMouseAbsoluteMotion, "Move the pointer to x,y"},
	{dispatch.OptMouseRelativeMotion, "Move the pointer by x,y"},
	{dispatch.OptKey, "Type a key: a name (TAB), a character, 0x hex or a decimal keysym"},
	{dispatch.OptModifiers, "Comma-separated modifiers held with --key (SHIFT,CONTROL,ALT,META)"},
	{dispatch.OptDump, "Print the subtree down to this depth"},
}

var exploreCmd = &cobra.Command{
	Use:   "explore PATH",
	Short: "Inspect or drive the element at PATH",
	Long: `Performs one request on the element at PATH.

Give exactly one operation: an action, text, value, mouse or key event, a
dump, or attribute flags. Without an operation flag the first attribute flag
selects a detail report (--all reports every attribute).`,
	Example: `  axtree explore / --dump 1
  axtree explore /0/1 --dump-all -o gedit.xml
  axtree explore /0/0/1 --action click
  axtree explore /0/0/0 --key a --modifiers CONTROL
  axtree explore /0/0 --states`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bag := dispatch.Options{dispatch.OptPath: args[0]}
		flags := cmd.Flags()
		for _, f := range valueFlags {
			if flags.Changed(f.name) {
				v, _ := flags.GetString(f.name)
				bag[f.name] = v
			}
		}
		if flags.Changed(dispatch.OptOutput) {
			v, _ := flags.GetString(dispatch.OptOutput)
			bag[dispatch.OptOutput] = v
		}
		for _, name := range boolFlags() {
			if on, _ := flags.GetBool(name); on {
				bag[name] = true
			}
		}
		button, _ := flags.GetString(dispatch.OptButton)
		if flags.Changed(dispatch.OptButton) {
			bag[dispatch.OptButton] = button
		}
		bag.DefaultButton(button)

		os.Exit(cli.Explore(context.Background(), runOptions(cmd), bag))
	},
}

func boolFlags() []string {
	names := []string{dispatch.OptDumpAll, string(domain.AttrAll)}
	for _, a := range domain.ExtendedAttributes {
		names = append(names, string(a))
	}
	return names
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	flags := exploreCmd.Flags()
	flags.SortFlags = false
	for _, f := range valueFlags {
		flags.String(f.name, "", f.usage)
	}
	flags.String(dispatch.OptButton, domain.ButtonLeft, "Mouse button for clicks, presses and releases (LEFT, MIDDLE, RIGHT)")
	flags.Bool(dispatch.OptDumpAll, false, "Print the whole subtree")
	flags.StringP(dispatch.OptOutput, "o", "", "Save the dump to a file (.xml, .json, .yaml) instead of printing it")
	flags.Bool(string(domain.AttrAll), false, "Report every attribute")
	for _, a := range domain.ExtendedAttributes {
		flags.Bool(string(a), false, "Report the "+string(a)+" of the element")
	}
}
