// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"errors"
)

var errEnough = errors.New("enough solutions")

// Solutions calls f on at most limit subsets of edges accepted by the edge
// diagram d, where present[i] tells if edge i is in the subset. Don't care
// variables are expanded, so every subset is listed once. A negative limit
// means no limit. The slice passed to f is reused between calls.
func Solutions(d Diagram, m, limit int, f func(present []bool) error) error {
	if limit == 0 {
		return nil
	}
	present := make([]bool, m)
	count := 0
	var expand func(prof []int, i int) error
	expand = func(prof []int, i int) error {
		if i == m {
			if err := f(present); err != nil {
				return err
			}
			count++
			if count == limit {
				return errEnough
			}
			return nil
		}
		// edge i is the variable at level m-i
		switch prof[m-i-1] {
		case 0:
			present[i] = false
			return expand(prof, i+1)
		case 1:
			present[i] = true
			return expand(prof, i+1)
		}
		for _, v := range [2]bool{false, true} {
			present[i] = v
			if err := expand(prof, i+1); err != nil {
				return err
			}
		}
		return nil
	}
	err := d.BDD.Allsat(d.Root, func(prof []int) error {
		return expand(prof, 0)
	})
	if errors.Is(err, errEnough) {
		return nil
	}
	return err
}
