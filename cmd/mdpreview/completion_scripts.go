package main

import (
	"fmt"
	"sort"
	"strings"
)

// commandNames returns the names of cmds in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return names
}

// flagWords returns every spelling of flags: --long and -s.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// globList splits a comma separated glob list.
func globList(globs string) []string {
	var out []string
	for _, g := range strings.Split(globs, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for mdpreview\n\n")
	b.WriteString("_mdpreview_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		if len(c.Flags) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range c.Flags {
				action := bashFlagAction(f)
				if action == "" {
					continue
				}
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(&b, "            %s)\n", pattern)
				fmt.Fprintf(&b, "                %s\n", action)
				b.WriteString("                return 0\n")
				b.WriteString("                ;;\n")
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("            return 0\n")
			b.WriteString("        fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			b.WriteString("        COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _mdpreview_completions mdpreview\n")
	return b.String()
}

// bashFlagAction returns the COMPREPLY line completing the value of f,
// or "" when f takes no value.
func bashFlagAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )", strings.Join(f.Values, " "))
	case flagFile:
		return "COMPREPLY=( $(compgen -f -- \"${cur}\") )"
	case flagDir:
		return "COMPREPLY=( $(compgen -d -- \"${cur}\") )"
	default:
		return "COMPREPLY=()"
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef mdpreview\n\n")
	b.WriteString("_mdpreview() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		var specs []string
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:argument:(%s)'", strings.Join(c.Args, " ")))
		case c.TakesFiles:
			specs = append(specs, fmt.Sprintf("'*:markdown file:_files -g \"%s\"'", zshGlob(c.FilePattern)))
		}
		if len(specs) == 0 {
			continue
		}

		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments -s \\\n")
		for i, spec := range specs {
			b.WriteString("                ")
			b.WriteString(spec)
			if i < len(specs)-1 {
				b.WriteString(" \\")
			}
			b.WriteString("\n")
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _mdpreview mdpreview\n")
	return b.String()
}

// zshFlagSpec renders one _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"
	action := zshFlagAction(f)

	if f.Repeatable {
		return "'*--" + f.Long + desc + action + "'"
	}
	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return "'--" + f.Long + desc + action + "'"
}

func zshFlagAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagInt:
		return ":number:"
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":file:_files -g \"" + zshGlob(f.FileGlob) + "\""
	case flagDir:
		return ":directory:_files -/"
	default:
		return ":value:"
	}
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(globs string) string {
	list := globList(globs)
	if len(list) == 1 {
		return list[0]
	}
	exts := make([]string, 0, len(list))
	for _, g := range list {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// zshEscape escapes text for a single-quoted _arguments description.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func fishScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for mdpreview\n\n")
	b.WriteString("function __fish_mdpreview_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_mdpreview_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c mdpreview -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mdpreview -n __fish_mdpreview_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_mdpreview_using_command %s'", c.Name)
		if len(c.Flags) > 0 || len(c.Args) > 0 || c.TakesFiles {
			b.WriteString("\n")
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c mdpreview %s -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -d '%s'", fishEscape(f.Desc))
			if action := fishFlagAction(f); action != "" {
				b.WriteString(" ")
				b.WriteString(action)
			}
			b.WriteString("\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c mdpreview %s -x -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c mdpreview %s -F\n", cond)
		}
	}

	return b.String()
}

func fishFlagAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return "-x -a '" + strings.Join(f.Values, " ") + "'"
	case flagFile:
		return "-r -F"
	case flagDir:
		return "-x -a '(__fish_complete_directories)'"
	default:
		return "-x"
	}
}

// fishEscape escapes text for a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# powershell completion for mdpreview\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName mdpreview -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, psList(flagWords(c.Flags)))
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $commandArgs = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, psList(c.Args))
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, line := range psEnumValues(cmds) {
		b.WriteString(line)
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $count = $elements.Count\n")
	b.WriteString("    if ($wordToComplete -ne '') { $count-- }\n\n")
	b.WriteString("    if ($count -le 1) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    $prev = $elements[$count - 1]\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $candidates = $values[$prev]\n")
	b.WriteString("    } elseif ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $candidates = $flags[$cmd]\n")
	b.WriteString("    } elseif ($commandArgs.ContainsKey($cmd)) {\n")
	b.WriteString("        $candidates = $commandArgs[$cmd]\n")
	b.WriteString("    } else {\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// psEnumValues returns one hashtable line per enum flag spelling, sorted.
func psEnumValues(cmds []commandDef) []string {
	seen := map[string]string{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			seen["--"+f.Long] = psList(f.Values)
			if f.Short != "" {
				seen["-"+f.Short] = psList(f.Values)
			}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("        '%s' = @(%s)\n", k, seen[k]))
	}
	return lines
}

// psList renders words as a PowerShell array body: 'a', 'b'.
func psList(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + psEscape(w) + "'"
	}
	return strings.Join(quoted, ", ")
}

// psEscape escapes text for a single-quoted PowerShell string.
func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
