/*
DESCRIPTION
  flags.go implements the repeatable string flag type the CLI needs for
  --language and --tag (each may be given more than once), since the
  standard flag package only supports single-valued flags out of the box.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package main

import "strings"

// repeatedFlag collects every value passed to a flag given more than
// once on the command line, e.g. --language en --language fr.
type repeatedFlag []string

func (r *repeatedFlag) String() string {
	if r == nil {
		return ""
	}
	return strings.Join(*r, ",")
}

func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}
