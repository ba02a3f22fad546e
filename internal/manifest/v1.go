package manifest

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/internal/forgeerr"
)

const descriptionAnnotation = "kubesphere.io/description"

func renderV1(fi *forgev1alpha1.FrontendIntegration) (map[string]interface{}, error) {
	fiName := fi.Name
	routingPath := strings.TrimSpace(fi.Spec.Routing.Path)
	if routingPath == "" || strings.HasPrefix(routingPath, "/") {
		return nil, &forgeerr.InvalidRoutingPathError{FIName: fiName, Path: fi.Spec.Routing.Path}
	}

	displayName := fi.Spec.DisplayName
	if displayName == "" {
		displayName = fiName
	}

	placements, err := effectivePlacements(fi.Spec.Menu)
	if err != nil {
		return nil, err
	}

	routeTail := fmt.Sprintf("/frontendintegrations/%s/%s", fiName, routingPath)
	routes := make([]interface{}, 0, len(placements))
	for _, p := range placements {
		routes = append(routes, map[string]interface{}{
			"path":   routePrefix(p) + routeTail,
			"pageId": pageID(fiName, p),
		})
	}

	var menus []interface{}
	if fi.Spec.Menu != nil {
		menuTitle := fi.Spec.Menu.Name
		if menuTitle == "" {
			menuTitle = displayName
		}
		menus = make([]interface{}, 0, len(placements))
		for _, p := range placements {
			menus = append(menus, map[string]interface{}{
				"parent": string(p),
				"name":   fmt.Sprintf("frontendintegrations/%s/%s", fiName, routingPath),
				"title":  menuTitle,
				"icon":   "GridDuotone",
				"order":  999,
			})
		}
	} else {
		menus = []interface{}{}
	}

	pages := make([]interface{}, 0, len(placements))
	switch fi.Spec.Integration.Type {
	case forgev1alpha1.IntegrationTypeIframe:
		iframe := fi.Spec.Integration.Iframe
		if iframe == nil {
			return nil, &forgeerr.InvalidIntegrationShapeError{FIName: fiName, IntegrationType: "iframe"}
		}
		src := iframe.Src
		if src == "" {
			src = iframe.Url
		}
		for _, p := range placements {
			pages = append(pages, iframePage(fiName, displayName, p, src))
		}
	case forgev1alpha1.IntegrationTypeCRD:
		crd := fi.Spec.Integration.Crd
		if crd == nil {
			return nil, &forgeerr.InvalidIntegrationShapeError{FIName: fiName, IntegrationType: "crd"}
		}
		columns := fi.Spec.Columns
		if len(columns) == 0 {
			columns = crd.Columns
		}
		if len(columns) == 0 {
			return nil, &forgeerr.MissingCrdColumnsError{FIName: fiName}
		}
		for _, p := range placements {
			pages = append(pages, crdPage(fiName, displayName, p, crd, columns))
		}
	default:
		return nil, &forgeerr.InvalidIntegrationShapeError{FIName: fiName, IntegrationType: string(fi.Spec.Integration.Type)}
	}

	out := map[string]interface{}{
		"version":     "1.0",
		"name":        fiName,
		"displayName": displayName,
		"routes":      routes,
		"menus":       menus,
		"locales":     []interface{}{},
		"pages":       pages,
		"build": map[string]interface{}{
			"target":     "kubesphere-extension",
			"moduleName": fiName,
			"systemjs":   true,
		},
	}
	if desc, ok := fi.Annotations[descriptionAnnotation]; ok && desc != "" {
		out["description"] = desc
	}
	return out, nil
}

// effectivePlacements defaults to a single implicit "global" placement when
// spec.menu is absent or carries no placements, and rejects any placement
// outside {global, cluster, workspace}. Placements are de-duplicated in
// first-seen order; golang-set backs the membership test.
func effectivePlacements(menu *forgev1alpha1.MenuSpec) ([]forgev1alpha1.MenuPlacement, error) {
	var raw []forgev1alpha1.MenuPlacement
	if menu != nil {
		raw = menu.Placements
	}
	if len(raw) == 0 {
		return []forgev1alpha1.MenuPlacement{forgev1alpha1.MenuPlacementGlobal}, nil
	}

	seen := mapset.NewSet()
	ordered := make([]forgev1alpha1.MenuPlacement, 0, len(raw))
	for _, p := range raw {
		if !isKnownPlacement(p) {
			return nil, &forgeerr.InvalidPlacementError{Placement: string(p)}
		}
		if seen.Contains(p) {
			continue
		}
		seen.Add(p)
		ordered = append(ordered, p)
	}
	return ordered, nil
}

func isKnownPlacement(p forgev1alpha1.MenuPlacement) bool {
	switch p {
	case forgev1alpha1.MenuPlacementGlobal, forgev1alpha1.MenuPlacementCluster, forgev1alpha1.MenuPlacementWorkspace:
		return true
	default:
		return false
	}
}

func routePrefix(p forgev1alpha1.MenuPlacement) string {
	switch p {
	case forgev1alpha1.MenuPlacementCluster:
		return "/clusters/:cluster"
	case forgev1alpha1.MenuPlacementWorkspace:
		return "/workspaces/:workspace"
	default:
		return ""
	}
}

func pageID(fiName string, p forgev1alpha1.MenuPlacement) string {
	return fmt.Sprintf("%s-%s", fiName, p)
}

func pageMeta(id, title string) map[string]interface{} {
	return map[string]interface{}{
		"id":    id,
		"name":  id,
		"title": title,
		"path":  "/" + id,
	}
}

func iframePage(fiName, displayName string, p forgev1alpha1.MenuPlacement, frameSrc string) map[string]interface{} {
	id := pageID(fiName, p)
	return map[string]interface{}{
		"id":             id,
		"entryComponent": id,
		"componentsTree": map[string]interface{}{
			"meta":    pageMeta(id, displayName),
			"context": map[string]interface{}{},
			"root": map[string]interface{}{
				"id":   id + "-root",
				"type": "Iframe",
				"props": map[string]interface{}{
					"FRAME_URL": frameSrc,
				},
				"meta": map[string]interface{}{"title": "Iframe", "scope": true},
			},
		},
	}
}

func crdPage(fiName, displayName string, p forgev1alpha1.MenuPlacement, crd *forgev1alpha1.CrdIntegration, columns []forgev1alpha1.Column) map[string]interface{} {
	id := pageID(fiName, p)
	scope := string(p)
	columnsConfig := transformColumns(columns)

	return map[string]interface{}{
		"id":             id,
		"entryComponent": id,
		"componentsTree": map[string]interface{}{
			"meta":    pageMeta(id, displayName),
			"context": map[string]interface{}{},
			"dataSources": []interface{}{
				map[string]interface{}{
					"id":   "columns",
					"type": "crd-columns",
					"config": map[string]interface{}{
						"COLUMNS_CONFIG": columnsConfig,
						"HOOK_NAME":      "useCrdColumns",
					},
				},
				map[string]interface{}{
					"id": "pageState",
					"type": "crd-page-state",
					"args": []interface{}{
						map[string]interface{}{"type": "binding", "source": "columns", "bind": "columns"},
					},
					"config": map[string]interface{}{
						"PAGE_ID": id,
						"CRD_CONFIG": map[string]interface{}{
							"apiVersion": crd.Version,
							"kind":       crd.Names.Kind,
							"plural":     crd.Names.Plural,
							"group":      crd.Group,
							"kapi":       true,
						},
						"SCOPE":     scope,
						"HOOK_NAME": "useCrdPageState",
					},
				},
			},
			"root": map[string]interface{}{
				"id":   id + "-root",
				"type": "CrdTable",
				"props": map[string]interface{}{
					"TABLE_KEY":     id,
					"TITLE":         displayName,
					"PARAMS":        binding("pageState", "params", nil),
					"REFETCH":       binding("pageState", "refetch", nil),
					"TOOLBAR_LEFT":  binding("pageState", "toolbarLeft", nil),
					"PAGE_CONTEXT":  binding("pageState", "pageContext", nil),
					"COLUMNS":       binding("columns", "columns", nil),
					"DATA":          binding("pageState", "data", nil),
					"IS_LOADING":    binding("pageState", "loading", false),
					"UPDATE":        binding("pageState", "update", nil),
					"DEL":           binding("pageState", "del", nil),
					"CREATE":        binding("pageState", "create", nil),
					"CREATE_INITIAL_VALUE": map[string]interface{}{
						"apiVersion": fmt.Sprintf("%s/%s", crd.Group, crd.Version),
						"kind":       crd.Names.Kind,
					},
				},
				"meta": map[string]interface{}{"title": "CrdTable", "scope": true},
			},
		},
	}
}

func binding(source, bind string, defaultValue interface{}) map[string]interface{} {
	out := map[string]interface{}{"type": "binding", "source": source, "bind": bind}
	if defaultValue != nil {
		out["defaultValue"] = defaultValue
	}
	return out
}

// transformColumns hoists render.format/pattern/link into render.payload
// (dropping the top-level fields) and guarantees a payload object exists,
// matching the reference renderer's column normalization.
func transformColumns(columns []forgev1alpha1.Column) []interface{} {
	out := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		payload := map[string]interface{}{}
		for k, v := range col.Render.Payload {
			payload[k] = v
		}
		if col.Render.Format != "" {
			payload["format"] = col.Render.Format
		}
		if col.Render.Pattern != "" {
			payload["pattern"] = col.Render.Pattern
		}
		if col.Render.Link != "" {
			payload["link"] = col.Render.Link
		}

		entry := map[string]interface{}{
			"key":   col.Key,
			"title": col.Title,
			"render": map[string]interface{}{
				"type":    string(col.Render.Type),
				"path":    col.Render.Path,
				"payload": payload,
			},
		}
		if col.EnableSorting != nil {
			entry["enableSorting"] = *col.EnableSorting
		}
		if col.EnableHiding != nil {
			entry["enableHiding"] = *col.EnableHiding
		}
		out = append(out, entry)
	}
	return out
}
