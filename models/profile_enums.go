package models

type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
	ActivityExtraActive      ActivityLevel = "EXTRA_ACTIVE"
)

type Goal string

const (
	GoalLoseWeight     Goal = "LOSE_WEIGHT"
	GoalMaintainWeight Goal = "MAINTAIN_WEIGHT"
	GoalGainWeight     Goal = "GAIN_WEIGHT"
	GoalBuildMuscle    Goal = "BUILD_MUSCLE"
	GoalRecomposition  Goal = "RECOMPOSITION"
	GoalImproveHealth  Goal = "IMPROVE_HEALTH"
	GoalPerformance    Goal = "PERFORMANCE"
	GoalPregnancy      Goal = "PREGNANCY"
	GoalLactation      Goal = "LACTATION"
)

type WeightChangeRate string

const (
	RateConservative WeightChangeRate = "CONSERVATIVE"
	RateModerate     WeightChangeRate = "MODERATE"
	RateAggressive   WeightChangeRate = "AGGRESSIVE"
)

type TrainingGoal string

const (
	TrainingEndurance      TrainingGoal = "ENDURANCE"
	TrainingStrengthGain   TrainingGoal = "STRENGTH_GAIN"
	TrainingMuscleGain     TrainingGoal = "MUSCLE_GAIN"
	TrainingFatLoss        TrainingGoal = "FAT_LOSS"
	TrainingFlexibility    TrainingGoal = "FLEXIBILITY"
	TrainingGeneralFitness TrainingGoal = "GENERAL_FITNESS"
)

type MacroRatio string

const (
	RatioHighProtein  MacroRatio = "HIGH_PROTEIN"
	RatioBalanced     MacroRatio = "BALANCED"
	RatioLowCarb      MacroRatio = "LOW_CARB"
	RatioModerateCarb MacroRatio = "MODERATE_CARB"
	RatioHighCarb     MacroRatio = "HIGH_CARB"
	RatioLowFat       MacroRatio = "LOW_FAT"
	RatioModerateFat  MacroRatio = "MODERATE_FAT"
	RatioHighFat      MacroRatio = "HIGH_FAT"
	RatioKeto         MacroRatio = "KETO_RATIO"
)

type CookingSkill string

const (
	SkillBeginner     CookingSkill = "BEGINNER"
	SkillIntermediate CookingSkill = "INTERMEDIATE"
	SkillAdvanced     CookingSkill = "ADVANCED"
	SkillProfessional CookingSkill = "PROFESSIONAL"
)
