package component

type Bullet struct{}

var BulletComponent = NewComponent[Bullet]()
