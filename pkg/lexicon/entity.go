package lexicon

// EntityKind tags an Entity.
type EntityKind uint8

const (
	KindBrand EntityKind = iota + 1
	KindModel
)

func (k EntityKind) String() string {
	switch k {
	case KindBrand:
		return "brand"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Entity is the value type of the alias index: a brand, or a model of a
// brand. It is comparable and used directly as a map key.
type Entity struct {
	Kind    EntityKind
	BrandID string
	ModelID string
}

// BrandEntity identifies a brand.
func BrandEntity(brandID string) Entity {
	return Entity{Kind: KindBrand, BrandID: brandID}
}

// ModelEntity identifies a model of a brand.
func ModelEntity(brandID, modelID string) Entity {
	return Entity{Kind: KindModel, BrandID: brandID, ModelID: modelID}
}

func (e Entity) String() string {
	if e.Kind == KindModel {
		return "model:" + e.BrandID + "/" + e.ModelID
	}
	return "brand:" + e.BrandID
}
