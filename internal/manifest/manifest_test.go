package manifest

import (
	"testing"

	"github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	forgev1alpha1 "github.com/frontend-forge/forge-operator/api/v1alpha1"
	"github.com/frontend-forge/forge-operator/internal/forgeerr"
)

func iframeFI() *forgev1alpha1.FrontendIntegration {
	return &forgev1alpha1.FrontendIntegration{
		ObjectMeta: metav1.ObjectMeta{Name: "sss"},
		Spec: forgev1alpha1.FrontendIntegrationSpec{
			Routing: forgev1alpha1.RoutingSpec{Path: "wewew"},
			Menu: &forgev1alpha1.MenuSpec{
				Placements: []forgev1alpha1.MenuPlacement{
					forgev1alpha1.MenuPlacementCluster,
					forgev1alpha1.MenuPlacementWorkspace,
					forgev1alpha1.MenuPlacementGlobal,
				},
			},
			Integration: forgev1alpha1.Integration{
				Type:   forgev1alpha1.IntegrationTypeIframe,
				Iframe: &forgev1alpha1.IframeIntegration{Src: "http://example.com/asdfas"},
			},
		},
	}
}

func TestRenderDefaultsToV1(t *testing.T) {
	g := gomega.NewWithT(t)
	m, err := Render(iframeFI(), "")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(m["version"]).To(gomega.Equal("1.0"))
}

func TestRenderAcceptsAllV1Aliases(t *testing.T) {
	g := gomega.NewWithT(t)
	for _, alias := range []string{"v1", "V1", " v1 ", "v1alpha1", "1", "1.0"} {
		_, err := Render(iframeFI(), alias)
		g.Expect(err).NotTo(gomega.HaveOccurred(), "alias %q should be accepted", alias)
	}
}

func TestRenderRejectsUnknownEngineVersion(t *testing.T) {
	g := gomega.NewWithT(t)
	_, err := Render(iframeFI(), "v99")
	g.Expect(err).To(gomega.HaveOccurred())
	var unsupported *forgeerr.UnsupportedEngineVersionError
	g.Expect(err).To(gomega.BeAssignableToTypeOf(unsupported))
}

func TestRenderIsDeterministic(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	a, err := Render(fi, "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	b, err := Render(fi, "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(a).To(gomega.Equal(b))
}

func TestIframeHappyPath(t *testing.T) {
	g := gomega.NewWithT(t)
	m, err := Render(iframeFI(), "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(m["name"]).To(gomega.Equal("sss"))
	routes, ok := m["routes"].([]interface{})
	g.Expect(ok).To(gomega.BeTrue())
	g.Expect(routes).To(gomega.HaveLen(3))

	first := routes[0].(map[string]interface{})
	g.Expect(first["path"]).To(gomega.Equal("/clusters/:cluster/frontendintegrations/sss/wewew"))
	g.Expect(first["pageId"]).To(gomega.Equal("sss-cluster"))

	last := routes[2].(map[string]interface{})
	g.Expect(last["path"]).To(gomega.Equal("/frontendintegrations/sss/wewew"))

	pages := m["pages"].([]interface{})
	g.Expect(pages).To(gomega.HaveLen(3))
	page := pages[0].(map[string]interface{})
	tree := page["componentsTree"].(map[string]interface{})
	root := tree["root"].(map[string]interface{})
	g.Expect(root["type"]).To(gomega.Equal("Iframe"))
	props := root["props"].(map[string]interface{})
	g.Expect(props["FRAME_URL"]).To(gomega.Equal("http://example.com/asdfas"))
}

func TestIframeAcceptsUrlAliasWhenSrcAbsent(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	fi.Spec.Integration.Iframe = &forgev1alpha1.IframeIntegration{Url: "http://example.com/legacy"}
	m, err := Render(fi, "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	pages := m["pages"].([]interface{})
	props := pages[0].(map[string]interface{})["componentsTree"].(map[string]interface{})["root"].(map[string]interface{})["props"].(map[string]interface{})
	g.Expect(props["FRAME_URL"]).To(gomega.Equal("http://example.com/legacy"))
}

func crdFI() *forgev1alpha1.FrontendIntegration {
	return &forgev1alpha1.FrontendIntegration{
		ObjectMeta: metav1.ObjectMeta{Name: "qweqwcccc"},
		Spec: forgev1alpha1.FrontendIntegrationSpec{
			Routing: forgev1alpha1.RoutingSpec{Path: "inspectrules"},
			Menu: &forgev1alpha1.MenuSpec{
				Placements: []forgev1alpha1.MenuPlacement{forgev1alpha1.MenuPlacementCluster},
			},
			Columns: []forgev1alpha1.Column{
				{Key: "name", Title: "Name", Render: forgev1alpha1.ColumnRender{Type: forgev1alpha1.ColumnRenderText, Path: "metadata.name"}},
				{Key: "updateTime", Title: "Updated", Render: forgev1alpha1.ColumnRender{Type: forgev1alpha1.ColumnRenderTime, Path: "status.updateTime", Format: "YYYY-MM-DD"}},
			},
			Integration: forgev1alpha1.Integration{
				Type: forgev1alpha1.IntegrationTypeCRD,
				Crd: &forgev1alpha1.CrdIntegration{
					Group:   "kubeeye.kubesphere.io",
					Version: "v1alpha2",
					Names:   forgev1alpha1.CrdNames{Kind: "InspectRule", Plural: "inspectrules"},
					Scope:   "Cluster",
				},
			},
		},
	}
}

func TestCrdHappyPath(t *testing.T) {
	g := gomega.NewWithT(t)
	m, err := Render(crdFI(), "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())

	pages := m["pages"].([]interface{})
	g.Expect(pages).To(gomega.HaveLen(1))
	tree := pages[0].(map[string]interface{})["componentsTree"].(map[string]interface{})
	dataSources := tree["dataSources"].([]interface{})
	g.Expect(dataSources).To(gomega.HaveLen(2))

	columnsDS := dataSources[0].(map[string]interface{})
	g.Expect(columnsDS["type"]).To(gomega.Equal("crd-columns"))
	config := columnsDS["config"].(map[string]interface{})
	columns := config["COLUMNS_CONFIG"].([]interface{})
	g.Expect(columns).To(gomega.HaveLen(2))

	updateCol := columns[1].(map[string]interface{})
	render := updateCol["render"].(map[string]interface{})
	_, hasTopLevelFormat := render["format"]
	g.Expect(hasTopLevelFormat).To(gomega.BeFalse())
	payload := render["payload"].(map[string]interface{})
	g.Expect(payload["format"]).To(gomega.Equal("YYYY-MM-DD"))

	root := tree["root"].(map[string]interface{})
	g.Expect(root["type"]).To(gomega.Equal("CrdTable"))
	props := root["props"].(map[string]interface{})
	civ := props["CREATE_INITIAL_VALUE"].(map[string]interface{})
	g.Expect(civ["apiVersion"]).To(gomega.Equal("kubeeye.kubesphere.io/v1alpha2"))
	g.Expect(civ["kind"]).To(gomega.Equal("InspectRule"))
}

func TestCrdModeFailsWithoutColumns(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := crdFI()
	fi.Spec.Columns = nil
	_, err := Render(fi, "v1")
	g.Expect(err).To(gomega.HaveOccurred())
	var missing *forgeerr.MissingCrdColumnsError
	g.Expect(err).To(gomega.BeAssignableToTypeOf(missing))
}

func TestEmptyColumnsToleratedForIframe(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	fi.Spec.Columns = nil
	_, err := Render(fi, "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())
}

func TestUnknownPlacementRejected(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	fi.Spec.Menu.Placements = []forgev1alpha1.MenuPlacement{"nowhere"}
	_, err := Render(fi, "v1")
	g.Expect(err).To(gomega.HaveOccurred())
	var invalid *forgeerr.InvalidPlacementError
	g.Expect(err).To(gomega.BeAssignableToTypeOf(invalid))
}

func TestDefaultsToGlobalPlacementWhenMenuAbsent(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	fi.Spec.Menu = nil
	m, err := Render(fi, "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	routes := m["routes"].([]interface{})
	g.Expect(routes).To(gomega.HaveLen(1))
	route := routes[0].(map[string]interface{})
	g.Expect(route["pageId"]).To(gomega.Equal("sss-global"))
	menus := m["menus"].([]interface{})
	g.Expect(menus).To(gomega.HaveLen(0))
}

func TestDuplicatePlacementsAreDeduplicatedInOrder(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	fi.Spec.Menu.Placements = []forgev1alpha1.MenuPlacement{
		forgev1alpha1.MenuPlacementGlobal,
		forgev1alpha1.MenuPlacementCluster,
		forgev1alpha1.MenuPlacementGlobal,
	}
	m, err := Render(fi, "v1")
	g.Expect(err).NotTo(gomega.HaveOccurred())
	routes := m["routes"].([]interface{})
	g.Expect(routes).To(gomega.HaveLen(2))
	g.Expect(routes[0].(map[string]interface{})["pageId"]).To(gomega.Equal("sss-global"))
	g.Expect(routes[1].(map[string]interface{})["pageId"]).To(gomega.Equal("sss-cluster"))
}

func TestInvalidRoutingPathRejected(t *testing.T) {
	g := gomega.NewWithT(t)
	fi := iframeFI()
	fi.Spec.Routing.Path = "/leading-slash"
	_, err := Render(fi, "v1")
	g.Expect(err).To(gomega.HaveOccurred())
}
