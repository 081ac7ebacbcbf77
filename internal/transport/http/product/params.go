package product

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/light-bringer/catalog-service/internal/app/product/contracts"
	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// parseFilter reads name and categoryId. An absent categoryId places no
// restriction; a present but blank one is the empty set and matches nothing.
func parseFilter(q url.Values) (contracts.SearchFilter, error) {
	name := q.Get("name")

	raw, present := q["categoryId"]
	if !present {
		return contracts.AnyCategory(name), nil
	}

	var ids []int64
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return contracts.SearchFilter{}, fmt.Errorf("%w: %q is not a category id", domain.ErrInvalidCategoryFilter, part)
			}
			ids = append(ids, id)
		}
	}
	return contracts.InCategories(name, ids...)
}

// parsePage reads page, size and sort. sort may repeat and takes
// "property" or "property,direction".
func parsePage(q url.Values) (pagination.Request, error) {
	page, err := intParam(q, "page", 0)
	if err != nil {
		return pagination.Request{}, err
	}
	size, err := intParam(q, "size", pagination.DefaultSize)
	if err != nil {
		return pagination.Request{}, err
	}

	var orders []pagination.Order
	for _, s := range q["sort"] {
		if strings.TrimSpace(s) == "" {
			continue
		}
		property, dir, _ := strings.Cut(s, ",")
		order := pagination.Order{Property: strings.TrimSpace(property)}
		if strings.TrimSpace(dir) != "" {
			d, err := pagination.ParseDirection(dir)
			if err != nil {
				return pagination.Request{}, fmt.Errorf("%w: %s", domain.ErrInvalidPageRequest, err)
			}
			order.Direction = d
		}
		orders = append(orders, order)
	}

	return pagination.NewRequest(page, size, orders...), nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidPageRequest, key, v)
	}
	return n, nil
}
