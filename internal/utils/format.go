package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/iancoleman/orderedmap"
)

/**
 * Convert a struct into an ordered map keyed by json tags
 * @param {interface{}} v - Struct value with json-tagged fields
 * @returns {*orderedmap.OrderedMap} Map preserving field declaration order
 * @description
 * - Round-trips through encoding/json so tags and omitempty apply
 */
func StructToOrderedMap(v interface{}) (*orderedmap.OrderedMap, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	record := orderedmap.New()
	if err := json.Unmarshal(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

/**
 * Print a list of ordered records as an aligned table
 * @param {[]*orderedmap.OrderedMap} dataList - Rows sharing one column set
 * @description
 * - Header row comes from the first record's keys, upper-cased
 * - Uses tabwriter for column alignment
 */
func PrintFormat(dataList []*orderedmap.OrderedMap) {
	if len(dataList) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	keys := dataList[0].Keys()
	header := make([]string, 0, len(keys))
	for _, key := range keys {
		header = append(header, strings.ToUpper(key))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, record := range dataList {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			val, _ := record.Get(key)
			row = append(row, fmt.Sprintf("%v", val))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
