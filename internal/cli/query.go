package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rediwo/redi-records/accessor"
	"github.com/rediwo/redi-records/paginator"
	"github.com/rediwo/redi-records/resource"
)

// QueryOptions holds the flags describing a resource query.
type QueryOptions struct {
	Resource string
	Filters  []string
	Sort     string
	Include  []string
	Page     map[string]string
}

func (q *QueryOptions) addFlags(cmd *cobra.Command, paginate bool) {
	cmd.Flags().StringVarP(&q.Resource, "resource", "r", "", "resource to query (required)")
	cmd.Flags().StringArrayVarP(&q.Filters, "filter", "f", nil, "filter as name=value, comma separated values match any (repeatable)")
	_ = cmd.MarkFlagRequired("resource")
	if !paginate {
		return
	}
	cmd.Flags().StringVarP(&q.Sort, "sort", "s", "", "sort fields, comma separated, - for descending (author.name,-id)")
	cmd.Flags().StringSliceVarP(&q.Include, "include", "i", nil, "relationship paths to include (comments.author)")
	cmd.Flags().StringToStringVar(&q.Page, "page", nil, "pagination: offset=N,limit=N or number=N,size=N")
}

// filters parses the name=value flags. A value holding commas becomes a
// list.
func (q *QueryOptions) filters() (resource.Filters, error) {
	filters := resource.Filters{}
	for _, f := range q.Filters {
		name, value, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid filter %q: expected name=value", f)
		}
		if strings.Contains(value, ",") {
			filters[name] = strings.Split(value, ",")
		} else {
			filters[name] = value
		}
	}
	return filters, nil
}

// options builds the accessor options for res.
func (q *QueryOptions) options(res *resource.Resource) (accessor.Options, error) {
	var opts accessor.Options

	if q.Sort != "" {
		criteria, err := resource.ParseSort(q.Sort)
		if err != nil {
			return opts, err
		}
		opts.SortCriteria = criteria
	}

	if len(q.Include) > 0 {
		directives, err := resource.NewIncludeDirectives(res, q.Include, false)
		if err != nil {
			return opts, err
		}
		opts.IncludeDirectives = directives
	}

	params := make(map[string]string, len(q.Page))
	for k, v := range q.Page {
		params["page["+k+"]"] = v
	}
	p, err := paginator.FromParams(params)
	if err != nil {
		return opts, err
	}
	opts.Paginator = p

	return opts, nil
}
